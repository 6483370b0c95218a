package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// newMock returns a driver test harness backed by a mock deployment. Each
// subtest queues the server replies it expects and inspects the commands sent.
func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// commandField returns the value at path inside the next started command.
func commandField(mt *mtest.T, name string, path ...string) bson.RawValue {
	mt.Helper()

	evt := mt.GetStartedEvent()
	if evt == nil {
		mt.Fatalf("expected a %s command, none was sent", name)
	}
	if evt.CommandName != name {
		mt.Fatalf("expected %s command, got %s", name, evt.CommandName)
	}
	val, err := evt.Command.LookupErr(path...)
	if err != nil {
		mt.Fatalf("%s command has no %v: %v", name, path, err)
	}
	return val
}
