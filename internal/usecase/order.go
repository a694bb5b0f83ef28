package usecase

import (
	"context"
	"errors"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.OrderStatus) (*entity.Order, error)
}

// OrderEventPublisher is optional; a nil publisher disables events
// without branching at every call site in main.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *entity.Order) error
}

// UserResolver hydrates the customer identity on admin order listings.
type UserResolver interface {
	GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error)
}

// UserRef is the customer projection attached to admin order views.
type UserRef struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

type OrderView struct {
	*entity.Order
	User UserRef `json:"user"`
}

type OrderUsecase struct {
	orders    OrderRepository
	users     UserResolver
	txn       repository.TxnRunner
	publisher OrderEventPublisher
	logger    *zap.Logger
}

func NewOrderUsecase(
	orders OrderRepository,
	users UserResolver,
	txn repository.TxnRunner,
	publisher OrderEventPublisher,
	logger *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		orders:    orders,
		users:     users,
		txn:       txn,
		publisher: publisher,
		logger:    logger.Named("OrderUsecase"),
	}
}

type OrderItemInput struct {
	ProductID string
	Quantity  int
	Price     float64
}

type CreateOrderInput struct {
	Items         []OrderItemInput
	TotalPrice    float64
	Address       string
	PaymentMethod string
}

// Create snapshots the cart the client submitted. The total price is
// taken as sent rather than recomputed from line items, matching the
// checkout contract the storefront relies on.
func (uc *OrderUsecase) Create(ctx context.Context, userID primitive.ObjectID, input CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if input.Address == "" {
		return nil, NewValidationError("Address is required")
	}
	if input.PaymentMethod == "" {
		return nil, NewValidationError("Payment method is required")
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, NewValidationError("Invalid product ID")
		}
		if item.Quantity < 1 {
			return nil, NewValidationError("Item quantity must be at least 1")
		}
		items = append(items, entity.OrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order := &entity.Order{
		UserID:        userID,
		Items:         items,
		TotalPrice:    input.TotalPrice,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
		Status:        entity.OrderStatusPending,
	}

	err := uc.txn.Run(ctx, func(txCtx context.Context) error {
		_, err := uc.orders.Create(txCtx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, order); err != nil {
			uc.logger.Warn("Failed to publish order created event", zap.String("orderID", order.ID.Hex()), zap.Error(err))
		}
	}

	return order, nil
}

func (uc *OrderUsecase) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*entity.Order, error) {
	return uc.orders.ListByUser(ctx, userID)
}

// ListAll returns every order with the customer's name and email
// resolved, for the admin dashboard.
func (uc *OrderUsecase) ListAll(ctx context.Context) ([]*OrderView, error) {
	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	userRefs := make(map[primitive.ObjectID]UserRef)
	views := make([]*OrderView, 0, len(orders))
	for _, order := range orders {
		ref, ok := userRefs[order.UserID]
		if !ok {
			ref = UserRef{ID: order.UserID}
			if user, err := uc.users.GetByID(ctx, order.UserID); err == nil {
				ref.Name = user.Name
				ref.Email = user.Email
			} else if !errors.Is(err, repository.ErrUserNotFound) {
				return nil, err
			}
			userRefs[order.UserID] = ref
		}
		views = append(views, &OrderView{Order: order, User: ref})
	}
	return views, nil
}

func (uc *OrderUsecase) UpdateStatus(ctx context.Context, id string, status string) (*entity.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewValidationError("Invalid order ID")
	}

	orderStatus := entity.OrderStatus(status)
	switch orderStatus {
	case entity.OrderStatusPending, entity.OrderStatusShipped, entity.OrderStatusDelivered, entity.OrderStatusCancelled:
	default:
		return nil, NewValidationError("Status must be Pending, Shipped, Delivered, or Cancelled")
	}

	var updated *entity.Order
	err = uc.txn.Run(ctx, func(txCtx context.Context) error {
		updated, err = uc.orders.UpdateStatus(txCtx, orderID, orderStatus)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
