package mongo

import "go.mongodb.org/mongo-driver/bson/primitive"

// objectID parses a hex id. Malformed ids cannot match any document, so
// callers treat !ok as not found.
func objectID(hex string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// objectIDs parses every valid hex id and drops the rest.
func objectIDs(hexes []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if oid, ok := objectID(h); ok {
			out = append(out, oid)
		}
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, len(oids))
	for i, oid := range oids {
		out[i] = oid.Hex()
	}
	return out
}
