// Package classifier manages the lifecycle of native Tsetlin Machine
// instances behind a typed, label-aware training and prediction API.
//
// A classifier starts unbound; fitting binds it to a freshly created native
// machine plus a label mapping, and reset returns it to unbound. The native
// library is loaded lazily on the first operation that needs it, so
// constructing and validating a classifier never touches the engine.
package classifier
