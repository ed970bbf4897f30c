package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/sapling/tree"
	"github.com/pbanos/sapling/tree/redisstore"
	"github.com/pbanos/sapling/tree/text"
	redis "gopkg.in/redis.v5"
)

// Key prefix for every classifier the tool keeps on redis.
const storePrefix = "sapling"

/*
treeSource resolves the classifier flags shared by the commands that
load a grown tree: either a file with its textual representation or a
named classifier on a redis store.
*/
type treeSource struct {
	*rootCmdConfig
	treeInput string
	store     string
	name      string
}

func (ts *treeSource) Validate() error {
	if ts.store == "" && ts.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if ts.store != "" && ts.name == "" {
		return fmt.Errorf("required name flag was not set")
	}
	return nil
}

func (ts *treeSource) loadTree(ctx context.Context) (*tree.Tree, error) {
	if ts.store != "" {
		ts.Logf("Loading classifier %q from store at %s...", ts.name, ts.store)
		store := openStore(ts.store)
		defer store.Close()
		return store.Load(ctx, ts.name)
	}
	ts.Logf("Reading classifier from %s...", ts.treeInput)
	f, err := os.Open(ts.treeInput)
	if err != nil {
		return nil, fmt.Errorf("reading classifier from %s: %v", ts.treeInput, err)
	}
	defer f.Close()
	t, err := text.Read(f)
	if err != nil {
		err = fmt.Errorf("parsing classifier from %s: %v", ts.treeInput, err)
	}
	return t, err
}

func openStore(addr string) tree.Store {
	rc := redis.NewClient(&redis.Options{Addr: addr})
	return redisstore.New(rc, storePrefix)
}

func outputTree(outputPath string, t *tree.Tree) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return text.Write(f, t)
}
