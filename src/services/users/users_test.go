package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// A group id from another institution never appears in the tenant-scoped
// lookup result, so registration must flag it instead of linking it.
func TestMissingGroupIDsFlagsForeignGroup(t *testing.T) {
	ownGroup := primitive.NewObjectID()
	foreignGroup := primitive.NewObjectID()

	requested := []primitive.ObjectID{ownGroup, foreignGroup}
	found := map[primitive.ObjectID]bool{ownGroup: true}

	missing := missingGroupIDs(requested, found)
	assert.Equal(t, []primitive.ObjectID{foreignGroup}, missing)
}

func TestMissingGroupIDsEmptyWhenAllResolve(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	missing := missingGroupIDs(
		[]primitive.ObjectID{a, b},
		map[primitive.ObjectID]bool{a: true, b: true},
	)
	assert.Empty(t, missing)
}

func TestMissingGroupIDsFlagsInactiveGroup(t *testing.T) {
	// inactive groups are filtered out of the lookup, so they read as missing
	inactive := primitive.NewObjectID()

	missing := missingGroupIDs([]primitive.ObjectID{inactive}, map[primitive.ObjectID]bool{})
	assert.Equal(t, []primitive.ObjectID{inactive}, missing)
}
