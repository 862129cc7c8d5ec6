package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	mongodbpkg "github.com/wms-platform/yard-service/pkg/mongodb"
)

// UnitOfWork runs a function inside a MongoDB transaction. Repository calls
// made with the context it passes to fn join the same transaction.
type UnitOfWork struct {
	client *mongodbpkg.Client
}

func NewUnitOfWork(client *mongodbpkg.Client) *UnitOfWork {
	return &UnitOfWork{client: client}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.client.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return fn(sessCtx)
	})
}
