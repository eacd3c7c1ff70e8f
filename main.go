// Package main library management API.
//
// @title           Library Management API
// @version         1.0
// @description     Librarian-facing service (books, patrons, reservations, staff, borrow/return transactions).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mawule-gabriel/TestingLibrary/app/echoServer"
	bookctrl "github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/book"
	patronctrl "github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/patron"
	reservationctrl "github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/reservation"
	staffctrl "github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/staff"
	transactionctrl "github.com/mawule-gabriel/TestingLibrary/app/echoServer/controller/transaction"
	"github.com/mawule-gabriel/TestingLibrary/app/echoServer/validation"
	"github.com/mawule-gabriel/TestingLibrary/config"
	bookrepo "github.com/mawule-gabriel/TestingLibrary/repository/book"
	patronrepo "github.com/mawule-gabriel/TestingLibrary/repository/patron"
	reservationrepo "github.com/mawule-gabriel/TestingLibrary/repository/reservation"
	staffrepo "github.com/mawule-gabriel/TestingLibrary/repository/staff"
	transactionrepo "github.com/mawule-gabriel/TestingLibrary/repository/transaction"
	booksvc "github.com/mawule-gabriel/TestingLibrary/service/book"
	patronsvc "github.com/mawule-gabriel/TestingLibrary/service/patron"
	reservationsvc "github.com/mawule-gabriel/TestingLibrary/service/reservation"
	staffsvc "github.com/mawule-gabriel/TestingLibrary/service/staff"
	transactionsvc "github.com/mawule-gabriel/TestingLibrary/service/transaction"
	"github.com/mawule-gabriel/TestingLibrary/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	// repos
	br := bookrepo.New(db)
	pr := patronrepo.New(db)
	rr := reservationrepo.New(db)
	sr := staffrepo.New(db)
	tr := transactionrepo.New(db)

	// services
	bs := booksvc.New(br)
	ps := patronsvc.New(pr)
	rs := reservationsvc.New(rr, pr, br)
	ss := staffsvc.New(sr, cfg.JWTSecret)
	ts := transactionsvc.New(db, tr, bs)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	patronC := &patronctrl.Controller{Svc: ps, V: v, Log: log}
	reservationC := &reservationctrl.Controller{Svc: rs, V: v, Log: log}
	staffC := &staffctrl.Controller{Svc: ss, V: v, Log: log}
	transactionC := &transactionctrl.Controller{Svc: ts, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:        bookC,
		Patron:      patronC,
		Reservation: reservationC,
		Staff:       staffC,
		Transaction: transactionC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
