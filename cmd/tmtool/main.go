// Command tmtool inspects and converts Tsetlin Machine model files without
// loading the native engine.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tsetlin-ml/tsetlin/model"
)

func init() {
	log.SetPrefix("[tmtool] ")
	log.SetFlags(0)
}

func main() {
	root := &cobra.Command{
		Use:   "tmtool",
		Short: "inspect and convert Tsetlin Machine model files",
	}
	root.AddCommand(inspectCmd(), convertCmd(), sizeCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func inspectCmd() *cobra.Command {
	var format *string

	cmd := cobra.Command{
		Use:   "inspect MODEL_FILE",
		Short: "print the hyperparameters and tensor shapes of a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			switch *format {
			case "raw", "container":
				s, err := readDense(path, *format)
				if err != nil {
					return err
				}
				printParams(s.Params)
				fmt.Printf("weights:        (%d, %d) int16\n", s.NumClauses, s.NumClasses)
				fmt.Printf("states:         (%d, %d, 2) int8\n", s.NumClauses, s.NumLiterals)
				if s.LiteralNames != nil {
					fmt.Printf("literal names:  %d\n", len(s.LiteralNames))
				}
				fmt.Printf("engine size:    %s\n", byteCount(model.DenseSizeBytes(s.Params)))
			case "sparse":
				s, err := model.ReadSparseRawFile(path)
				if err != nil {
					return err
				}
				printParams(s.Params)
				total := 0
				for _, clause := range s.Clauses {
					total += len(clause)
				}
				fmt.Printf("weights:        (%d, %d) int16\n", s.NumClauses, s.NumClasses)
				fmt.Printf("live automatons: %s across %d clauses\n",
					humanize.Comma(int64(total)), s.NumClauses)
				fmt.Printf("engine size:    %s\n", byteCount(model.SparseSizeBytes(s.Params, s.ClauseSizes())))
			default:
				return fmt.Errorf("unknown format %q (want raw, container, or sparse)", *format)
			}

			if info, err := os.Stat(path); err == nil {
				fmt.Printf("file size:      %s\n", byteCount(info.Size()))
			}
			return nil
		},
	}

	format = cmd.Flags().String("format", "raw", "model file format: raw, container, or sparse")
	return &cmd
}

func convertCmd() *cobra.Command {
	var from, to *string

	cmd := cobra.Command{
		Use:   "convert SRC DST",
		Short: "convert a dense model file between the raw and container formats",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			s, err := readDense(src, *from)
			if err != nil {
				return err
			}

			switch *to {
			case "raw":
				// The raw format has no field for literal names.
				s.LiteralNames = nil
				return model.WriteRawFile(dst, s)
			case "container":
				return model.WriteContainerFile(dst, s)
			default:
				return fmt.Errorf("unknown target format %q (want raw or container)", *to)
			}
		},
	}

	from = cmd.Flags().String("from", "raw", "source format: raw or container")
	to = cmd.Flags().String("to", "container", "target format: raw or container")
	return &cmd
}

func sizeCmd() *cobra.Command {
	var clauses, literals, classes *uint32

	cmd := cobra.Command{
		Use:   "size",
		Short: "estimate the engine allocation size for a dense machine shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := model.Params{
				Threshold:   1,
				NumClauses:  *clauses,
				NumLiterals: *literals,
				NumClasses:  *classes,
				MaxState:    127,
				MinState:    -127,
				S:           1.0,
			}
			if err := p.Validate(); err != nil {
				return err
			}
			size := model.DenseSizeBytes(p)
			fmt.Printf("%s (%s bytes)\n", byteCount(size), humanize.Comma(size))
			return nil
		},
	}

	clauses = cmd.Flags().Uint32("clauses", 1000, "number of clauses")
	literals = cmd.Flags().Uint32("literals", 1, "number of binary input features")
	classes = cmd.Flags().Uint32("classes", 2, "number of output classes")
	return &cmd
}

func readDense(path, format string) (*model.State, error) {
	switch format {
	case "raw":
		return model.ReadRawFile(path)
	case "container":
		return model.ReadContainerFile(path)
	default:
		return nil, fmt.Errorf("unknown format %q (want raw or container)", format)
	}
}

func printParams(p model.Params) {
	fmt.Printf("threshold:      %d\n", p.Threshold)
	fmt.Printf("clauses:        %d\n", p.NumClauses)
	fmt.Printf("literals:       %d\n", p.NumLiterals)
	fmt.Printf("classes:        %d\n", p.NumClasses)
	fmt.Printf("state bounds:   [%d, %d]\n", p.MinState, p.MaxState)
	fmt.Printf("boost TP:       %v\n", p.BoostTruePositive)
	fmt.Printf("sensitivity:    %g\n", p.S)
}

func byteCount(n int64) string {
	if n < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}
