package echoServer

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/book"
	"github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/patron"
	"github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/reservation"
	"github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/staff"
	"github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/transaction"
	jwtutil "github.com/mawule-gabriel/TestingLibrary/util/jwt"
)

type C struct {
	Book        *book.Controller
	Patron      *patron.Controller
	Reservation *reservation.Controller
	Staff       *staff.Controller
	Transaction *transaction.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/staff/login", c.Staff.Login)

	// Librarian session required
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization",
	}))
	auth.Use(sessionClaims(c.JWTSecret))

	registerRoutes(auth, c)
}

// sessionClaims re-reads the bearer token and puts the staff id and role on
// the request context for handlers.
func sessionClaims(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, role, err := jwtutil.ParseAuth(ctx.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("staff_id", id)
			ctx.Set("role", role)
			return next(ctx)
		}
	}
}

func registerRoutes(auth *echo.Group, c C) {
	// Books
	auth.GET("/books", c.Book.List)
	auth.GET("/books/search", c.Book.Search)
	auth.GET("/books/recent", c.Book.Recent)
	auth.GET("/books/:id", c.Book.Detail)
	auth.POST("/books", c.Book.Create)
	auth.PATCH("/books/:id/status", c.Book.UpdateStatus)
	auth.DELETE("/books/:id", c.Book.Delete)

	// Patrons
	auth.GET("/patrons", c.Patron.List)
	auth.GET("/patrons/search", c.Patron.Search)
	auth.GET("/patrons/:id", c.Patron.Detail)
	auth.POST("/patrons", c.Patron.Create)
	auth.PATCH("/patrons/:id/address", c.Patron.UpdateAddress)
	auth.DELETE("/patrons/:id", c.Patron.Delete)

	// Reservations
	auth.GET("/reservations", c.Reservation.List)
	auth.GET("/reservations/:id", c.Reservation.Detail)
	auth.POST("/reservations", c.Reservation.Create)
	auth.PATCH("/reservations/:id/status", c.Reservation.UpdateStatus)
	auth.DELETE("/reservations/:id", c.Reservation.Delete)

	// Staff
	auth.GET("/staff", c.Staff.List)
	auth.POST("/staff", c.Staff.Create)
	auth.DELETE("/staff/:id", c.Staff.Delete)

	// Transactions
	auth.GET("/transactions", c.Transaction.List)
	auth.POST("/transactions", c.Transaction.Create)
	auth.POST("/transactions/borrow", c.Transaction.Borrow)
	auth.POST("/transactions/:id/return", c.Transaction.Return)
	auth.DELETE("/transactions/:id", c.Transaction.Delete)
}
