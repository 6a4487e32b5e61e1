package services_test

import (
	"ordersystem/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) MarkVerified(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of repositories.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindItem(userID, productID string) (*models.CartItem, error) {
	args := m.Called(userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepository) Save(item *models.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) PlaceOrder(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

// MockMailer is a mock implementation of services.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(toEmail, username, verifyURL string) error {
	args := m.Called(toEmail, username, verifyURL)
	return args.Error(0)
}

func (m *MockMailer) SendOrderConfirmation(toEmail string, order *models.Order) error {
	args := m.Called(toEmail, order)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

// stubGateway is a payment.Gateway with a fixed outcome and a call counter.
type stubGateway struct {
	result bool
	calls  int
}

func (g *stubGateway) Process(amount float64, userID, walletNumber, paymentDetails string) bool {
	g.calls++
	return g.result
}
