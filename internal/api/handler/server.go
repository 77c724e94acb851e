package handler

// Server 所有 handler 的集合, 交給 router 掛載
type Server struct {
	CheckoutHandler   *CheckoutHandler
	PaymentHandler    *PaymentHandler
	OrderHandler      *OrderHandler
	RestaurantHandler *RestaurantHandler
	HealthHandler     *HealthHandler
}

func NewServer(
	checkoutHandler *CheckoutHandler,
	paymentHandler *PaymentHandler,
	orderHandler *OrderHandler,
	restaurantHandler *RestaurantHandler,
	healthHandler *HealthHandler,
) *Server {
	return &Server{
		CheckoutHandler:   checkoutHandler,
		PaymentHandler:    paymentHandler,
		OrderHandler:      orderHandler,
		RestaurantHandler: restaurantHandler,
		HealthHandler:     healthHandler,
	}
}
