// Command seed provisions a default organization and the initial accounts:
// a lead Analyst that can register further users, one IT account, and one
// regular User. Existing usernames are left untouched, so the command is
// safe to re-run.
package main

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/infrastructure/config"
	mongodb "github.com/threat-tracker/incident-api/internal/infrastructure/db/mongo"
	"github.com/threat-tracker/incident-api/pkg/logger"
)

const (
	defaultOrgName = "Default Organization"
	seedPassword   = "password123"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	orgID, err := ensureOrganization(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("organization seeding failed")
	}
	log.Info().Str("organization_id", orgID.Hex()).Str("name", defaultOrgName).Msg("organization ready")

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashing seed password failed")
	}

	type account struct {
		username       string
		role           string
		canCreateUsers bool
	}
	accounts := []account{
		{username: "lead_analyst", role: domain.RoleAnalyst, canCreateUsers: true},
		{username: "it_user", role: domain.RoleIT},
		{username: "regular_user", role: domain.RoleUser},
	}

	users := db.Collection("users")
	for _, a := range accounts {
		err := users.FindOne(ctx, bson.M{"username": a.username}).Err()
		if err == nil {
			log.Info().Str("username", a.username).Msg("already exists, skipping")
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Fatal().Err(err).Str("username", a.username).Msg("lookup failed")
		}

		doc := bson.M{
			"username":       a.username,
			"password":       string(hash),
			"role":           a.role,
			"organizationId": orgID,
		}
		if a.canCreateUsers {
			doc["canCreateUsers"] = true
		}
		if _, err := users.InsertOne(ctx, doc); err != nil {
			log.Fatal().Err(err).Str("username", a.username).Msg("insert failed")
		}
		log.Info().Str("username", a.username).Str("role", a.role).Msg("inserted")
	}

	log.Info().Msg("done seeding")
}

func ensureOrganization(ctx context.Context, db *mongo.Database) (primitive.ObjectID, error) {
	orgs := db.Collection("organizations")

	var existing struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := orgs.FindOne(ctx, bson.M{"name": defaultOrgName}).Decode(&existing)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, err
	}

	res, err := orgs.InsertOne(ctx, bson.M{"name": defaultOrgName})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}
