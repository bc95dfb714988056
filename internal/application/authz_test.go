package application

import (
	"testing"

	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

func TestCanMutate(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	cases := []struct {
		name     string
		identity domain.Identity
		want     bool
	}{
		{"owner", domain.Identity{ID: owner}, true},
		{"administrator", domain.Identity{ID: uuid.New(), Administrator: true}, true},
		{"stranger", domain.Identity{ID: uuid.New()}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := canMutate(tc.identity, owner); got != tc.want {
				t.Fatalf("canMutate = %v, want %v", got, tc.want)
			}
		})
	}
}
