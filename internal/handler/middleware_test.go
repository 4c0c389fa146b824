package handler

import (
	"testing"

	"github.com/segyhp/lamf-engine/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestActorFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   domain.Actor
		ok     bool
	}{
		{"untyped token is a user", Claims{ID: "u1"}, domain.Actor{Kind: domain.ActorUser, ID: "u1", Role: domain.RoleUser}, true},
		{"admin keeps role", Claims{ID: "a1", Type: "user", Role: "admin"}, domain.Actor{Kind: domain.ActorUser, ID: "a1", Role: domain.RoleAdmin}, true},
		{"api client carries no role", Claims{ID: "p1", Type: "api_client", Role: "admin"}, domain.Actor{Kind: domain.ActorAPIClient, ID: "p1"}, true},
		{"unknown type", Claims{ID: "x", Type: "robot"}, domain.Actor{}, false},
		{"missing id", Claims{Type: "user"}, domain.Actor{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := actorFromClaims(&tt.claims)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
