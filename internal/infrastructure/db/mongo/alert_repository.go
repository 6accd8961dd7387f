package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/ports"
)

const alertsCollection = "alerts"

// AlertRepository implements ports.AlertRepository. Classify and review are
// single atomic $set updates; "no document matched" surfaces as
// domain.ErrAlertNotFound.
type AlertRepository struct {
	coll *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{coll: db.Collection(alertsCollection)}
}

type mongoAlert struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"userId"`
	OrganizationID primitive.ObjectID `bson:"organizationId"`
	Message        string             `bson:"message"`
	Status         string             `bson:"status"`
	Type           *string            `bson:"type"`
	TriggeredAt    time.Time          `bson:"triggeredAt"`
}

func (ma *mongoAlert) toDomain() *domain.Alert {
	return &domain.Alert{
		ID:             ma.ID.Hex(),
		UserID:         ma.UserID,
		OrganizationID: ma.OrganizationID.Hex(),
		Message:        ma.Message,
		Status:         domain.AlertStatus(ma.Status),
		Type:           ma.Type,
		TriggeredAt:    ma.TriggeredAt.UTC(),
	}
}

func (r *AlertRepository) Insert(ctx context.Context, alert *domain.Alert) error {
	orgID, err := primitive.ObjectIDFromHex(alert.OrganizationID)
	if err != nil {
		return fmt.Errorf("organization id: %w", domain.ErrInvalidID)
	}

	doc := mongoAlert{
		UserID:         alert.UserID,
		OrganizationID: orgID,
		Message:        alert.Message,
		Status:         string(alert.Status),
		Type:           alert.Type,
		TriggeredAt:    alert.TriggeredAt.UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		alert.ID = oid.Hex()
	}
	return nil
}

func (r *AlertRepository) FindByID(ctx context.Context, id string) (*domain.Alert, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("alert id: %w", domain.ErrInvalidID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAlert
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("find alert: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AlertRepository) List(ctx context.Context, filter ports.AlertFilter) ([]*domain.Alert, error) {
	query := bson.M{}
	if filter.OrganizationID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("organization id: %w", domain.ErrInvalidID)
		}
		query["organizationId"] = oid
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer cur.Close(ctx)

	alerts := []*domain.Alert{}
	for cur.Next(ctx) {
		var ma mongoAlert
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode alert: %w", err)
		}
		alerts = append(alerts, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

func (r *AlertRepository) SetClassification(ctx context.Context, id, alertType string) error {
	return r.updateByID(ctx, id, bson.M{"type": alertType, "status": string(domain.AlertStatusClassified)})
}

func (r *AlertRepository) SetReviewed(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{"status": string(domain.AlertStatusReviewed)})
}

func (r *AlertRepository) updateByID(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("alert id: %w", domain.ErrInvalidID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}
