package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection        = "users"
	groupsCollection       = "groups"
	categoriesCollection   = "categories"
	transactionsCollection = "transactions"

	defaultDBName = "finance"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	client       *mongodriver.Client
	db           *mongodriver.Database
	users        *mongodriver.Collection
	groups       *mongodriver.Collection
	categories   *mongodriver.Collection
	transactions *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает
// коллекции и обеспечивает индексацию.
func New(ctx context.Context, dbURL string) (*Mongo, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("mongo: empty db url")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(dbURL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(dbURL)
	db := cli.Database(dbName)

	m := &Mongo{
		client:       cli,
		db:           db,
		users:        db.Collection(usersCollection),
		groups:       db.Collection(groupsCollection),
		categories:   db.Collection(categoriesCollection),
		transactions: db.Collection(transactionsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение с MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт индексы, необходимые сервису:
//   - уникальные email/username пользователей;
//   - лукап аккаунта по значению refresh-токена (логаут);
//   - уникальное имя группы;
//   - уникальное имя категории в пределах пользователя;
//   - выборка транзакций пользователя по occurred_at (desc).
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	userModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("uniq_username").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "refresh_token", Value: 1}},
			Options: options.Index().SetName("refresh_token_lookup").
				SetPartialFilterExpression(bson.D{{Key: "refresh_token", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
	}

	if _, err := m.users.Indexes().CreateMany(ctx, userModels); err != nil {
		return fmt.Errorf("mongo ensure user indexes: %w", err)
	}

	groupModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_group_name").SetUnique(true),
		},
	}

	if _, err := m.groups.Indexes().CreateMany(ctx, groupModels); err != nil {
		return fmt.Errorf("mongo ensure group indexes: %w", err)
	}

	categoryModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_user_category").SetUnique(true),
		},
	}

	if _, err := m.categories.Indexes().CreateMany(ctx, categoryModels); err != nil {
		return fmt.Errorf("mongo ensure category indexes: %w", err)
	}

	txModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("user_occurred_desc"),
		},
	}

	if _, err := m.transactions.Indexes().CreateMany(ctx, txModels); err != nil {
		return fmt.Errorf("mongo ensure transaction indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся расшифровке, возвращает
// значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
