package ports

import "context"

// Navigator performs the hard transition after a successful credential flow
type Navigator interface {
	Navigate(ctx context.Context, to string) error
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(ctx context.Context, to string) error

func (f NavigatorFunc) Navigate(ctx context.Context, to string) error {
	return f(ctx, to)
}
