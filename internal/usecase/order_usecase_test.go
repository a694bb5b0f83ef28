package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newOrderUsecaseForTest(orders *MockOrderRepository, users *MockUserRepository, publisher OrderEventPublisher) *OrderUsecase {
	logger, _ := zap.NewDevelopment()
	return NewOrderUsecase(orders, users, &fakeTxnRunner{}, publisher, logger)
}

func validOrderInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 2, Price: 49.99},
		},
		TotalPrice:    99.98,
		Address:       "House 12, Street 5, Lahore",
		PaymentMethod: "cod",
	}
}

func TestOrderUsecase_Create(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("Success_PublishesEvent", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockPub := new(MockOrderEventPublisher)
		uc := newOrderUsecaseForTest(mockOrders, new(MockUserRepository), mockPub)

		mockOrders.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
			return o.UserID == userID && o.Status == entity.OrderStatusPending && o.TotalPrice == 99.98
		})).Return(primitive.NewObjectID(), nil).Once()
		mockPub.On("PublishOrderCreated", ctx, mock.AnythingOfType("*entity.Order")).Return(nil).Once()

		order, err := uc.Create(ctx, userID, validOrderInput())

		assert.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPending, order.Status)
		mockOrders.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("PublisherFailure_DoesNotFailOrder", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockPub := new(MockOrderEventPublisher)
		uc := newOrderUsecaseForTest(mockOrders, new(MockUserRepository), mockPub)

		mockOrders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
			Return(primitive.NewObjectID(), nil).Once()
		mockPub.On("PublishOrderCreated", ctx, mock.AnythingOfType("*entity.Order")).
			Return(errors.New("nats down")).Once()

		_, err := uc.Create(ctx, userID, validOrderInput())

		assert.NoError(t, err)
	})

	t.Run("NilPublisher", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		uc := newOrderUsecaseForTest(mockOrders, new(MockUserRepository), nil)

		mockOrders.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
			Return(primitive.NewObjectID(), nil).Once()

		_, err := uc.Create(ctx, userID, validOrderInput())

		assert.NoError(t, err)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		uc := newOrderUsecaseForTest(mockOrders, new(MockUserRepository), nil)

		input := validOrderInput()
		input.Items = nil

		_, err := uc.Create(ctx, userID, input)

		assert.ErrorIs(t, err, ErrEmptyCart)
		mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidProductID", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		uc := newOrderUsecaseForTest(mockOrders, new(MockUserRepository), nil)

		input := validOrderInput()
		input.Items[0].ProductID = "garbage"

		_, err := uc.Create(ctx, userID, input)

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestOrderUsecase_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("HydratesCustomerOnce", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockUsers := new(MockUserRepository)
		uc := newOrderUsecaseForTest(mockOrders, mockUsers, nil)

		user := &entity.User{ID: primitive.NewObjectID(), Name: "Ayesha", Email: "ayesha@example.com"}
		orders := []*entity.Order{
			{ID: primitive.NewObjectID(), UserID: user.ID},
			{ID: primitive.NewObjectID(), UserID: user.ID},
		}
		mockOrders.On("ListAll", ctx).Return(orders, nil).Once()
		mockUsers.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		views, err := uc.ListAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, views, 2)
		assert.Equal(t, "Ayesha", views[0].User.Name)
		assert.Equal(t, "ayesha@example.com", views[1].User.Email)
		mockUsers.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("MissingCustomer_IDOnlyRef", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockUsers := new(MockUserRepository)
		uc := newOrderUsecaseForTest(mockOrders, mockUsers, nil)

		orphanUserID := primitive.NewObjectID()
		mockOrders.On("ListAll", ctx).Return([]*entity.Order{{ID: primitive.NewObjectID(), UserID: orphanUserID}}, nil).Once()
		mockUsers.On("GetByID", ctx, orphanUserID).Return(nil, repository.ErrUserNotFound).Once()

		views, err := uc.ListAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, orphanUserID, views[0].User.ID)
		assert.Empty(t, views[0].User.Name)
	})
}

func TestOrderUsecase_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		uc := newOrderUsecaseForTest(mockOrders, new(MockUserRepository), nil)

		id := primitive.NewObjectID()
		updated := &entity.Order{ID: id, Status: entity.OrderStatusShipped}
		mockOrders.On("UpdateStatus", mock.Anything, id, entity.OrderStatusShipped).Return(updated, nil).Once()

		order, err := uc.UpdateStatus(ctx, id.Hex(), "Shipped")

		assert.NoError(t, err)
		assert.Equal(t, entity.OrderStatusShipped, order.Status)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		uc := newOrderUsecaseForTest(mockOrders, new(MockUserRepository), nil)

		_, err := uc.UpdateStatus(ctx, primitive.NewObjectID().Hex(), "Teleported")

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		uc := newOrderUsecaseForTest(mockOrders, new(MockUserRepository), nil)

		id := primitive.NewObjectID()
		mockOrders.On("UpdateStatus", mock.Anything, id, entity.OrderStatusDelivered).
			Return(nil, repository.ErrOrderNotFound).Once()

		_, err := uc.UpdateStatus(ctx, id.Hex(), "Delivered")

		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	})
}
