package tree

import "context"

/*
Store is an interface to manage a store where whole classifiers are
kept by name, so they can be shared between the machines that grow
them and the machines that classify with them.

All its methods take a context that may allow cancelling the
operation (thus forcing the return of an error) if the
implementation allows it.
*/
type Store interface {
	// Save takes a name and a tree and stores the tree under the
	// name, replacing any tree previously stored under it. When the
	// name is empty a unique one is generated. It returns the name
	// the tree was stored under, or an error if the tree cannot be
	// stored.
	Save(ctx context.Context, name string, t *Tree) (string, error)
	// Load takes a name and returns the tree stored under it, or an
	// error if the store cannot be queried or no tree is stored
	// under the name.
	Load(ctx context.Context, name string) (*Tree, error)
	// List returns the names of the stored trees, or an error if the
	// store cannot be queried.
	List(ctx context.Context) ([]string, error)
	// Delete takes a name and removes the tree stored under it. It
	// returns an error if the tree exists but the deletion cannot be
	// performed.
	Delete(ctx context.Context, name string) error
	// Close closes the store, implementations should free any
	// resources in use as well as ensure any pending changes are
	// applied before returning. It returns an error if the Close
	// cannot be completed.
	Close() error
}
