package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key with go-hashid. Keys must be
// prefixed by entity type so different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SolutionUUID is the seed identity of the solution with slug.
func SolutionUUID(slug string) uuid.UUID {
	return UUID("go-solutions:solution:" + strings.ToLower(strings.TrimSpace(slug)))
}

// CategoryUUID is the seed identity of the category with slug.
func CategoryUUID(slug string) uuid.UUID {
	return UUID("go-solutions:category:" + strings.ToLower(strings.TrimSpace(slug)))
}

// BlockUUID is the seed identity of the index-th block of a solution.
func BlockUUID(solutionID uuid.UUID, index int) uuid.UUID {
	return UUID("go-solutions:block:" + solutionID.String() + ":" + strconv.Itoa(index))
}
