package server

import (
	"preorder-service/internal/handler"
	"preorder-service/internal/middleware"
	"preorder-service/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
	bankHandler    *handler.BankHandler
	jwtSecret      string
}

func NewServer(
	orderService service.OrderService,
	paymentService service.PaymentService,
	verificationService service.VerificationService,
	bankService service.BankService,
	jwtSecret string,
) *Server {
	e := echo.New()

	e.Use(echomw.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		orderHandler:   handler.NewOrderHandler(orderService),
		paymentHandler: handler.NewPaymentHandler(paymentService, verificationService),
		bankHandler:    handler.NewBankHandler(bankService),
		jwtSecret:      jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/banks", s.bankHandler.ListBanks)

	// -------- orders --------
	orders := api.Group("/orders")
	orders.POST("", s.orderHandler.CreateOrder)
	orders.GET("/:orderID", s.orderHandler.GetOrder)
	orders.POST("/:orderID/cancel", s.orderHandler.CancelOrder)
	orders.PUT("/:orderID/bank", s.paymentHandler.AssignBank)
	orders.GET("/:orderID/shipping-split", s.orderHandler.ShippingSplit)

	// -------- payments --------
	payments := api.Group("/payments")
	payments.POST("/:paymentID/proof", s.paymentHandler.SubmitProof)
	payments.POST("/:paymentID/retry", s.paymentHandler.RetryPayment)

	// -------- admin: verification actor + fulfillment --------
	admin := api.Group("/admin", middleware.AdminAuth(s.jwtSecret))
	admin.POST("/payments/:paymentID/verify", s.paymentHandler.VerifyPayment)
	admin.POST("/orders/:orderID/status", s.orderHandler.AdvanceStatus)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
