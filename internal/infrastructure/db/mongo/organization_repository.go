package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/threat-tracker/incident-api/internal/core/domain"
)

const organizationsCollection = "organizations"

// OrganizationRepository reads the organizations collection. Organizations
// are seeded out of band and never written through the API.
type OrganizationRepository struct {
	coll *mongo.Collection
}

func NewOrganizationRepository(db *mongo.Database) *OrganizationRepository {
	return &OrganizationRepository{coll: db.Collection(organizationsCollection)}
}

type mongoOrganization struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *OrganizationRepository) List(ctx context.Context) ([]*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer cur.Close(ctx)

	orgs := []*domain.Organization{}
	for cur.Next(ctx) {
		var mo mongoOrganization
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode organization: %w", err)
		}
		orgs = append(orgs, &domain.Organization{ID: mo.ID.Hex(), Name: mo.Name})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}
