package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/threat-tracker/incident-api/internal/core/domain"
)

const ticketsCollection = "tickets"

// TicketRepository implements ports.TicketRepository.
type TicketRepository struct {
	coll *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{coll: db.Collection(ticketsCollection)}
}

type mongoTicket struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	AlertID        string             `bson:"alertId"`
	OrganizationID primitive.ObjectID `bson:"organizationId"`
	Description    string             `bson:"description"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func (mt *mongoTicket) toDomain() *domain.Ticket {
	return &domain.Ticket{
		ID:             mt.ID.Hex(),
		AlertID:        mt.AlertID,
		OrganizationID: mt.OrganizationID.Hex(),
		Description:    mt.Description,
		Status:         mt.Status,
		CreatedAt:      mt.CreatedAt.UTC(),
	}
}

func (r *TicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	// The organization reference arrives verbatim from the source alert and
	// is expected to already be canonical.
	orgID, err := primitive.ObjectIDFromHex(ticket.OrganizationID)
	if err != nil {
		return fmt.Errorf("organization id: %w", domain.ErrInvalidID)
	}

	doc := mongoTicket{
		AlertID:        ticket.AlertID,
		OrganizationID: orgID,
		Description:    ticket.Description,
		Status:         ticket.Status,
		CreatedAt:      ticket.CreatedAt.UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ticket.ID = oid.Hex()
	}
	return nil
}

func (r *TicketRepository) List(ctx context.Context, organizationID string) ([]*domain.Ticket, error) {
	query := bson.M{}
	if organizationID != "" {
		oid, err := primitive.ObjectIDFromHex(organizationID)
		if err != nil {
			return nil, fmt.Errorf("organization id: %w", domain.ErrInvalidID)
		}
		query["organizationId"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer cur.Close(ctx)

	tickets := []*domain.Ticket{}
	for cur.Next(ctx) {
		var mt mongoTicket
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		tickets = append(tickets, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("ticket id: %w", domain.ErrInvalidID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}
