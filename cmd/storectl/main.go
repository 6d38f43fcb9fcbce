package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

func main() {
	if err := newApp(openDB).Run(os.Args); err != nil {
		log.Error().Err(err).Msg("storectl failed")
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Log, cfg.Environment, "storectl")
	return client.InitDBClient(&cfg.Database)
}

// newApp builds the command tree. open is called lazily by each command so
// that help output needs no database.
func newApp(open func() (*gorm.DB, error)) *cli.App {
	return &cli.App{
		Name:  "storectl",
		Usage: "administer the storefront database",
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "insert the sample catalog",
				Action: func(c *cli.Context) error {
					db, err := open()
					if err != nil {
						return err
					}
					catalog := service.NewCatalogService(repository.NewItemRepository(db), 1)
					if err := catalog.Seed(c.Context); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "catalog seeded")
					return nil
				},
			},
			{
				Name:  "coupon",
				Usage: "manage coupons",
				Subcommands: []*cli.Command{
					{
						Name:  "add",
						Usage: "create a coupon",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "code", Required: true},
							&cli.StringFlag{Name: "amount", Required: true, Usage: "discount amount, e.g. 5.00"},
						},
						Action: func(c *cli.Context) error {
							code := strings.TrimSpace(c.String("code"))
							if code == "" || len(code) > 15 {
								return fmt.Errorf("coupon code must be 1 to 15 characters")
							}
							amount, err := decimal.NewFromString(c.String("amount"))
							if err != nil || amount.IsNegative() {
								return fmt.Errorf("invalid amount %q", c.String("amount"))
							}

							db, err := open()
							if err != nil {
								return err
							}
							coupon := &model.Coupon{Code: code, Amount: amount}
							if err := repository.NewCouponRepository(db).Create(c.Context, coupon); err != nil {
								return fmt.Errorf("create coupon: %w", err)
							}
							fmt.Fprintf(c.App.Writer, "coupon %s created\n", coupon.Code)
							return nil
						},
					},
				},
			},
			{
				Name:  "refund",
				Usage: "review and grant refund requests",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "show orders with a pending refund request",
						Action: func(c *cli.Context) error {
							refunds, err := refundService(open)
							if err != nil {
								return err
							}
							orders, err := refunds.ListRefundRequests(c.Context)
							if err != nil {
								return err
							}
							printRefundRequests(c.App.Writer, orders)
							return nil
						},
					},
					{
						Name:      "grant",
						Usage:     "accept the refund requests on the given orders",
						ArgsUsage: "REF_CODE...",
						Action: func(c *cli.Context) error {
							if c.NArg() == 0 {
								return cli.Exit("at least one REF_CODE is required", 2)
							}
							refunds, err := refundService(open)
							if err != nil {
								return err
							}
							n, err := refunds.GrantRefunds(c.Context, c.Args().Slice())
							if err != nil {
								return err
							}
							fmt.Fprintf(c.App.Writer, "%d refund(s) granted\n", n)
							return nil
						},
					},
				},
			},
		},
	}
}

func refundService(open func() (*gorm.DB, error)) (service.RefundService, error) {
	db, err := open()
	if err != nil {
		return nil, err
	}
	return service.NewRefundService(db, repository.NewOrderRepository(db), repository.NewRefundRepository(db)), nil
}

func printRefundRequests(w io.Writer, orders []*model.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "no pending refund requests")
		return
	}
	for _, o := range orders {
		ref := ""
		if o.RefCode != nil {
			ref = *o.RefCode
		}
		fmt.Fprintf(w, "%s\tuser=%s\n", ref, o.UserID)
		for _, r := range o.Refunds {
			fmt.Fprintf(w, "\t%s <%s> %s\n", r.CreatedAt.Format("2006-01-02"), r.Email, r.Reason)
		}
	}
}
