package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"orderline/internal/domain/model"
	infraRepo "orderline/internal/infra/repository"
	repo "orderline/internal/repository"
	"orderline/internal/usecase"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var stdout io.Writer = os.Stdout

func commands(get func() *deps) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "schema",
			Usage: "create missing tables (ITEM, ORDERS, ORDER_ITEM, AUDIT_LOG)",
			Action: func(c *cli.Context) error {
				if err := infraRepo.AutoMigrate(get().db); err != nil {
					log.WithError(err).Error("auto migrate failed")
					return cli.Exit("schema failed", 1)
				}
				log.Info("schema ready")
				return nil
			},
		},
		{
			Name:  "item",
			Usage: "items referenced by order lines",
			Subcommands: []*cli.Command{
				{
					Name: "add",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "name", Required: true},
						&cli.Int64Flag{Name: "price", Required: true},
						&cli.Int64Flag{Name: "stock", Value: 0},
					},
					Action: func(c *cli.Context) error {
						it, err := get().catalog.RegisterItem(c.Context, usecase.RegisterItemInput{
							Name:          c.String("name"),
							Price:         c.Int64("price"),
							StockQuantity: c.Int64("stock"),
						})
						return respond(it, err)
					},
				},
			},
		},
		{
			Name:  "order",
			Usage: "orders owning order lines",
			Subcommands: []*cli.Command{
				{
					Name:  "create",
					Flags: []cli.Flag{&cli.Int64Flag{Name: "member", Required: true}},
					Action: func(c *cli.Context) error {
						o, err := get().catalog.OpenOrder(c.Context, c.Int64("member"))
						return respond(o, err)
					},
				},
				{
					Name:  "lines",
					Usage: "list lines of an order with the order total",
					Flags: []cli.Flag{&cli.Int64Flag{Name: "order", Required: true}},
					Action: func(c *cli.Context) error {
						out, err := get().lines.ListOrderLines(c.Context, c.Int64("order"))
						return respond(out, err)
					},
				},
				{
					Name:  "delete",
					Usage: "delete an order and all of its lines",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: "order", Required: true},
						&cli.Int64Flag{Name: "actor", Required: true},
					},
					Action: func(c *cli.Context) error {
						out, err := get().lines.DeleteOrder(c.Context, c.Int64("actor"), c.Int64("order"))
						return respond(out, err)
					},
				},
			},
		},
		{
			Name:  "line",
			Usage: "order lines",
			Subcommands: []*cli.Command{
				{
					Name:  "add",
					Usage: "add a line; the unit price is the item's current price",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: "order", Required: true},
						&cli.Int64Flag{Name: "item", Required: true},
						&cli.Int64Flag{Name: "quantity", Value: 1},
					},
					Action: func(c *cli.Context) error {
						out, err := get().lines.AddLine(c.Context, usecase.AddLineInput{
							OrderID:  c.Int64("order"),
							ItemID:   c.Int64("item"),
							Quantity: c.Int64("quantity"),
						})
						return respond(out, err)
					},
				},
				{
					Name:  "show",
					Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
					Action: func(c *cli.Context) error {
						out, err := get().lines.GetLine(c.Context, c.Int64("id"))
						return respond(out, err)
					},
				},
				{
					Name:  "adjust",
					Usage: "correct the quantity of a line",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: "id", Required: true},
						&cli.Int64Flag{Name: "quantity", Required: true},
						&cli.Int64Flag{Name: "actor", Required: true},
					},
					Action: func(c *cli.Context) error {
						out, err := get().lines.AdjustQuantity(c.Context, c.Int64("actor"), c.Int64("id"), c.Int64("quantity"))
						return respond(out, err)
					},
				},
				{
					Name:  "reprice",
					Usage: "correct the unit price of a line",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: "id", Required: true},
						&cli.Int64Flag{Name: "price", Required: true},
						&cli.Int64Flag{Name: "actor", Required: true},
					},
					Action: func(c *cli.Context) error {
						out, err := get().lines.CorrectUnitPrice(c.Context, c.Int64("actor"), c.Int64("id"), c.Int64("price"))
						return respond(out, err)
					},
				},
			},
		},
		{
			Name:  "audit",
			Usage: "corrections made to order lines",
			Subcommands: []*cli.Command{
				{
					Name: "list",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: "line"},
						&cli.Int64Flag{Name: "actor"},
						&cli.IntFlag{Name: "limit", Value: 50},
					},
					Action: func(c *cli.Context) error {
						f := repo.AuditLogFilter{Limit: c.Int("limit")}
						if c.IsSet("line") {
							id := c.Int64("line")
							rt := model.AuditResourceOrderItem
							f.ResourceID = &id
							f.ResourceType = &rt
						}
						if c.IsSet("actor") {
							actor := c.Int64("actor")
							f.ActorID = &actor
						}
						logs, err := get().audits.List(c.Context, f)
						return respond(logs, err)
					},
				},
			},
		},
	}
}

// respond は結果をJSONで出す。エラーはコードに応じた終了コードにする。
func respond(v any, err error) error {
	if err != nil {
		return exitError(err)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitError(err error) error {
	code := usecase.CodeOf(err)
	entry := log.WithField("code", code)

	ue, ok := usecase.AsError(err)
	if !ok {
		entry.WithError(err).Error("command failed")
		return cli.Exit(err.Error(), 1)
	}
	if ue.Err != nil && !errors.Is(ue.Err, model.ErrInvalidArgument) {
		entry = entry.WithError(ue.Err)
	}

	switch code {
	case usecase.CodeInternal:
		entry.Error(ue.Message)
		return cli.Exit(ue.Message, 1)
	default:
		entry.Warn(ue.Message)
		return cli.Exit(ue.Message, exitCodes[code])
	}
}

var exitCodes = map[usecase.Code]int{
	usecase.CodeInvalidArgument:    2,
	usecase.CodeNotFound:           3,
	usecase.CodeFailedPrecondition: 4,
}
