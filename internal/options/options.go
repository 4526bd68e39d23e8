// Package options implements generic functional options for codec
// constructors.
//
// Codec packages alias Option[*Codec] under their own name and wrap New or
// NoError in exported With* functions, so construction reads as
//
//	c, err := categorize.New(labels, dt, categorize.WithEncodedType(at))
//
// and invalid option values surface as constructor errors rather than
// panics.
package options

// Option configures a value of type T during construction.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option. It is the only Option
// implementation; constructors obtain one through New or NoError.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that can reject its value.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply applies opts to target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
