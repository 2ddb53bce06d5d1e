package impl

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// Hand-written testify doubles for the ports the services depend on.

type mockCartStore struct {
	mock.Mock
}

func (m *mockCartStore) Items(ctx context.Context, userID string) ([]entity.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]entity.CartItem)

	return items, args.Error(1)
}

func (m *mockCartStore) AddOrIncrement(ctx context.Context, userID string, product entity.Product, quantity int) error {
	return m.Called(ctx, userID, product, quantity).Error(0)
}

func (m *mockCartStore) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}

func (m *mockCartStore) Delete(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockCartStore) DeleteAll(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCartStore) Watch(ctx context.Context, userID string) (<-chan []entity.CartItem, <-chan error, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).(<-chan []entity.CartItem)
	errs, _ := args.Get(1).(<-chan error)

	return items, errs, args.Error(2)
}

var _ repository.CartStore = (*mockCartStore)(nil)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order entity.Order) (string, error) {
	args := m.Called(ctx, order)

	return args.String(0), args.Error(1)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, userID, orderID string) (entity.Order, error) {
	args := m.Called(ctx, userID, orderID)
	order, _ := args.Get(0).(entity.Order)

	return order, args.Error(1)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]entity.Order)

	return orders, args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, userID, orderID string, status entity.OrderStatus) error {
	return m.Called(ctx, userID, orderID, status).Error(0)
}

var _ repository.OrderRepository = (*mockOrderRepository)(nil)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]entity.Product)

	return products, args.Error(1)
}

func (m *mockProductRepository) FindByID(ctx context.Context, productID string) (entity.Product, error) {
	args := m.Called(ctx, productID)
	product, _ := args.Get(0).(entity.Product)

	return product, args.Error(1)
}

func (m *mockProductRepository) Upsert(ctx context.Context, product entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

var _ repository.ProductRepository = (*mockProductRepository)(nil)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

var _ repository.UserRepository = (*mockUserRepository)(nil)

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

var _ service.EventPublisher = (*mockEventPublisher)(nil)

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

var _ service.PasswordHasher = (*mockPasswordHasher)(nil)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(userID, email string) (string, error) {
	args := m.Called(userID, email)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

var _ service.TokenService = (*mockTokenService)(nil)

type mockIdentityVerifier struct {
	mock.Mock
}

func (m *mockIdentityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.ExternalIdentity, error) {
	args := m.Called(ctx, idToken)
	identity, _ := args.Get(0).(*service.ExternalIdentity)

	return identity, args.Error(1)
}

var _ service.IdentityVerifier = (*mockIdentityVerifier)(nil)

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) SendToUserTopic(ctx context.Context, userID, title, body string, data map[string]string) error {
	return m.Called(ctx, userID, title, body, data).Error(0)
}

var _ service.NotificationService = (*mockNotificationService)(nil)

type mockSeedLoader struct {
	mock.Mock
}

func (m *mockSeedLoader) Load(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entity.Product)

	return products, args.Error(1)
}

var _ service.SeedLoader = (*mockSeedLoader)(nil)
