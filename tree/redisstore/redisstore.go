/*
Package redisstore implements a tree.Store backed by a redis database,
so classifiers can be shared between the machines that grow them and
the machines that classify with them.

Each classifier is kept under a single key holding its textual
representation, and the names of all stored classifiers are kept in an
index set. For a store with prefix P, the classifier named N lives at
P:model:N and the index set at P:models.
*/
package redisstore

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pbanos/sapling/tree"
	"github.com/pbanos/sapling/tree/text"
	redis "gopkg.in/redis.v5"
)

type redisStore struct {
	rc     *redis.Client
	prefix string
}

/*
New takes a redis client and a key prefix and returns a tree.Store
that keeps classifiers on the client's database under keys starting
with the prefix.
*/
func New(rc *redis.Client, prefix string) tree.Store {
	return &redisStore{rc, prefix}
}

/*
Save takes a name and a tree and stores the textual representation of
the tree under the name, replacing any previously stored tree. When
the name is empty, a fresh UUID is generated and retried until a key
is claimed, so concurrent saves cannot silently take over each
other's names. It returns the name the tree was stored under.
*/
func (rs *redisStore) Save(ctx context.Context, name string, t *tree.Tree) (string, error) {
	var buf bytes.Buffer
	if err := text.Write(&buf, t); err != nil {
		return "", fmt.Errorf("saving classifier: encoding tree: %v", err)
	}
	data := buf.String()
	if name == "" {
		var ok bool
		for !ok {
			name = uuid.New().String()
			var err error
			ok, err = rs.rc.SetNX(rs.modelKey(name), data, 0).Result()
			if err != nil {
				return "", fmt.Errorf("saving classifier in redis: %v", err)
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
		}
	} else {
		if err := rs.rc.Set(rs.modelKey(name), data, 0).Err(); err != nil {
			return "", fmt.Errorf("saving classifier %q in redis: %v", name, err)
		}
	}
	if err := rs.rc.SAdd(rs.indexKey(), name).Err(); err != nil {
		return "", fmt.Errorf("indexing classifier %q in redis: %v", name, err)
	}
	return name, nil
}

/*
Load takes a name and returns the tree stored under it, decoded from
its textual representation, or an error if the store cannot be
queried or no classifier is stored under the name.
*/
func (rs *redisStore) Load(ctx context.Context, name string) (*tree.Tree, error) {
	data, err := rs.rc.Get(rs.modelKey(name)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("no classifier stored as %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving classifier %q from redis: %v", name, err)
	}
	t, err := text.Read(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving classifier %q: decoding tree: %v", name, err)
	}
	return t, nil
}

/*
List returns the names of the stored classifiers in lexicographical
order, or an error if the store cannot be queried.
*/
func (rs *redisStore) List(ctx context.Context) ([]string, error) {
	names, err := rs.rc.SMembers(rs.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing classifiers in redis: %v", err)
	}
	sort.Strings(names)
	return names, nil
}

/*
Delete takes a name and removes the classifier stored under it along
with its index entry. Deleting a name with no stored classifier is
not an error.
*/
func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := rs.rc.Del(rs.modelKey(name)).Err(); err != nil {
		return fmt.Errorf("deleting classifier %q from redis: %v", name, err)
	}
	if err := rs.rc.SRem(rs.indexKey(), name).Err(); err != nil {
		return fmt.Errorf("unindexing classifier %q from redis: %v", name, err)
	}
	return nil
}

/*
Close closes the connection to redis.
*/
func (rs *redisStore) Close() error {
	return rs.rc.Close()
}

func (rs *redisStore) modelKey(name string) string {
	return fmt.Sprintf("%s:model:%s", rs.prefix, name)
}

func (rs *redisStore) indexKey() string {
	return fmt.Sprintf("%s:models", rs.prefix)
}
