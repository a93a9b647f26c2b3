package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/volaille/internal/domain/models"
)

const (
	collEggCollections = "egg_collections"
	collFeedUsage      = "feed_usage"
	collMedicineUsage  = "medicine_usage"
	collInventory      = "inventory_items"
	collBirds          = "birds"
	collSnapshots      = "daily_snapshots"
)

// Repository defines the persistence operations backing the analytics engine.
type Repository interface {
	ProductionBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.ProductionRecord, error)
	FeedUsageBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.UsageRecord, error)
	MedicineUsageBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.UsageRecord, error)
	InventoryByFarm(ctx context.Context, farmID string) ([]models.InventoryItem, error)
	BirdCount(ctx context.Context, farmID string) (int, error)
	SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// MongoDBRepository implements Repository on top of the farm document store.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

func rangeFilter(farmID string, start, end time.Time) bson.M {
	return bson.M{
		"farm_id": farmID,
		"date":    bson.M{"$gte": start, "$lte": end},
	}
}

// productionDoc mirrors the persisted egg collection documents, including the
// legacy field aliases still present in older documents. Canonicalization
// happens here, once, so the engine only ever sees the fixed record shape.
type productionDoc struct {
	Date      time.Time `bson:"date"`
	Shift     string    `bson:"shift"`
	Pen       string    `bson:"pen"`
	Quantity  *int      `bson:"quantity"`
	Collected *int      `bson:"collected"`
	Grade     string    `bson:"grade"`
	Collector string    `bson:"collector"`
	FarmID    string    `bson:"farm_id"`
}

func (d productionDoc) canonical() models.ProductionRecord {
	quantity := 0
	if d.Quantity != nil {
		quantity = *d.Quantity
	} else if d.Collected != nil {
		quantity = *d.Collected
	}
	if quantity < 0 {
		quantity = 0
	}
	return models.ProductionRecord{
		Date:      d.Date,
		Shift:     models.Shift(d.Shift),
		Pen:       d.Pen,
		Quantity:  quantity,
		Grade:     models.Grade(d.Grade),
		Collector: d.Collector,
		FarmID:    d.FarmID,
	}
}

type usageDoc struct {
	Date         time.Time `bson:"date"`
	ItemID       string    `bson:"item_id"`
	QuantityUsed *float64  `bson:"quantity_used"`
	Used         *float64  `bson:"used"`
	FarmID       string    `bson:"farm_id"`
}

func (d usageDoc) canonical() models.UsageRecord {
	var quantity float64
	if d.QuantityUsed != nil {
		quantity = *d.QuantityUsed
	} else if d.Used != nil {
		quantity = *d.Used
	}
	if quantity < 0 {
		quantity = 0
	}
	return models.UsageRecord{
		Date:         d.Date,
		ItemID:       d.ItemID,
		QuantityUsed: quantity,
		FarmID:       d.FarmID,
	}
}

// ProductionBetween returns canonical egg collection records for the farm and
// window, sorted by date ascending.
func (r *MongoDBRepository) ProductionBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.ProductionRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection(collEggCollections).Find(ctx, rangeFilter(farmID, start, end), opts)
	if err != nil {
		return nil, fmt.Errorf("find egg collections: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode egg collections: %w", err)
	}

	records := make([]models.ProductionRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.canonical())
	}
	return records, nil
}

func (r *MongoDBRepository) usageBetween(ctx context.Context, coll, farmID string, start, end time.Time) ([]models.UsageRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection(coll).Find(ctx, rangeFilter(farmID, start, end), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll, err)
	}
	defer cursor.Close(ctx)

	var docs []usageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll, err)
	}

	records := make([]models.UsageRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.canonical())
	}
	return records, nil
}

// FeedUsageBetween returns canonical feed usage records for the window.
func (r *MongoDBRepository) FeedUsageBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.UsageRecord, error) {
	return r.usageBetween(ctx, collFeedUsage, farmID, start, end)
}

// MedicineUsageBetween returns canonical medicine usage records for the window.
func (r *MongoDBRepository) MedicineUsageBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.UsageRecord, error) {
	return r.usageBetween(ctx, collMedicineUsage, farmID, start, end)
}

// InventoryByFarm lists all stocked items for a farm.
func (r *MongoDBRepository) InventoryByFarm(ctx context.Context, farmID string) ([]models.InventoryItem, error) {
	cursor, err := r.collection(collInventory).Find(ctx, bson.M{"farm_id": farmID})
	if err != nil {
		return nil, fmt.Errorf("find inventory items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode inventory items: %w", err)
	}
	return items, nil
}

// BirdCount sums the flock sizes registered for a farm.
func (r *MongoDBRepository) BirdCount(ctx context.Context, farmID string) (int, error) {
	cursor, err := r.collection(collBirds).Find(ctx, bson.M{"farm_id": farmID})
	if err != nil {
		return 0, fmt.Errorf("find birds: %w", err)
	}
	defer cursor.Close(ctx)

	var flocks []struct {
		Count int `bson:"count"`
	}
	if err := cursor.All(ctx, &flocks); err != nil {
		return 0, fmt.Errorf("decode birds: %w", err)
	}

	total := 0
	for _, flock := range flocks {
		total += flock.Count
	}
	return total, nil
}

// SaveDailySnapshot persists the scheduler's daily aggregate document.
func (r *MongoDBRepository) SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	if _, err := r.collection(collSnapshots).InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert daily snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
