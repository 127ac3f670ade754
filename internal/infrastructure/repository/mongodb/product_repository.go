package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrops-br/products-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const productCollectionName = "products"

// productDocument is the stored shape of a product.
// __v is kept for compatibility with documents written by mongoose.
type productDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Title   *string            `bson:"title,omitempty"`
	Price   *float64           `bson:"price,omitempty"`
	Brand   *string            `bson:"brand,omitempty"`
	Version int32              `bson:"__v"`
}

func newProductDocument(p *domain.Product) *productDocument {
	return &productDocument{
		Title: p.Title,
		Price: p.Price,
		Brand: p.Brand,
	}
}

func (d *productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:    d.ID.Hex(),
		Title: d.Title,
		Price: d.Price,
		Brand: d.Brand,
	}
}

// ProductRepository is a MongoDB implementation of domain.ProductRepository
type ProductRepository struct {
	collection *mongo.Collection
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewProductRepository creates a repository over the products collection of db
func NewProductRepository(db *mongo.Database, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(productCollectionName),
		tracer:     tracer,
		logger:     logger,
	}
}

// Create inserts a product and assigns the generated ObjectID
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	result, err := r.collection.InsertOne(ctx, newProductDocument(product))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		err := fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to insert product")
		return err
	}
	product.ID = oid.Hex()

	span.SetAttributes(attribute.String("product.id", product.ID))
	r.logger.InfoContext(ctx, "Product created in repository",
		slog.String("product_id", product.ID),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return nil
}

// FindByID retrieves a product by ID. Malformed IDs are reported as not found.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		span.SetStatus(codes.Error, "Product not found")
		return nil, domain.ErrProductNotFound
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		return nil, r.findError(ctx, span, id, err)
	}

	span.SetStatus(codes.Ok, "Product found")
	return doc.toDomain(), nil
}

// FindAll retrieves every product in the collection
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode products")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toDomain())
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	r.logger.InfoContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// Update applies the patch with $set/$unset and returns the document after the update
func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		span.SetStatus(codes.Error, "Product not found")
		return nil, domain.ErrProductNotFound
	}

	filter := bson.M{"_id": oid}

	var doc productDocument
	if patch.IsEmpty() {
		// an update with no operators is rejected by the server
		err = r.collection.FindOne(ctx, filter).Decode(&doc)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.collection.FindOneAndUpdate(ctx, filter, buildUpdate(patch), opts).Decode(&doc)
	}
	if err != nil {
		return nil, r.findError(ctx, span, id, err)
	}

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return doc.toDomain(), nil
}

// Delete removes a product by ID
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.String("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

func (r *ProductRepository) findError(ctx context.Context, span trace.Span, id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		return domain.ErrProductNotFound
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "Failed to find product")
	return fmt.Errorf("failed to find product: %w", err)
}

func buildUpdate(patch domain.ProductPatch) bson.D {
	set := bson.D{}
	unset := bson.D{}
	addField(&set, &unset, "title", patch.Title)
	addField(&set, &unset, "price", patch.Price)
	addField(&set, &unset, "brand", patch.Brand)

	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}

func addField[T any](set, unset *bson.D, key string, field domain.Optional[T]) {
	switch {
	case !field.Set:
	case field.Null:
		*unset = append(*unset, bson.E{Key: key, Value: ""})
	default:
		*set = append(*set, bson.E{Key: key, Value: field.Value})
	}
}
