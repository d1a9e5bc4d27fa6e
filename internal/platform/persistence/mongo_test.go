package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoDB_Database(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// Connect is lazy, so no server is needed to obtain a database handle
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)

	mdb := newMongoDB(logger, client, "audit_test")
	assert.Equal(t, "audit_test", mdb.Database().Name())
	assert.NoError(t, mdb.Close(context.Background()))
}

func TestMongoDB_CloseNil(t *testing.T) {
	var mdb *MongoDB
	assert.NoError(t, mdb.Close(context.Background()))
}
