package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/knifehit/internal/economy"
)

// ShopItem is one catalog entry as seen by the player.
type ShopItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Owned    bool   `json:"owned"`
	Equipped bool   `json:"equipped"`
}

// ShopView is the shop command output.
type ShopView struct {
	Coins int        `json:"coins"`
	Items []ShopItem `json:"items"`
}

func newShopView(econ *economy.Economy) ShopView {
	p := econ.Profile()
	v := ShopView{Coins: p.Coins}
	for _, s := range econ.Catalog().Skins {
		v.Items = append(v.Items, ShopItem{
			ID:       string(s.ID),
			Name:     s.Name,
			Price:    s.Price,
			Owned:    p.OwnsSkin(s.ID),
			Equipped: p.EquippedSkin == s.ID,
		})
	}
	return v
}

func (v ShopView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Coins: %d\n\n", v.Coins)
	fmt.Fprintf(&b, "%-10s %-14s %-6s %s\n", "ID", "NAME", "PRICE", "")
	for _, it := range v.Items {
		status := ""
		switch {
		case it.Equipped:
			status = "equipped"
		case it.Owned:
			status = "owned"
		}
		fmt.Fprintf(&b, "%-10s %-14s %-6d %s\n", it.ID, it.Name, it.Price, status)
	}
	return b.String()
}

// PurchaseResult is the buy command output.
type PurchaseResult struct {
	Skin  string `json:"skin"`
	Price int    `json:"price"`
	Paid  int    `json:"paid"`
	Coins int    `json:"coins"`
}

func (r PurchaseResult) String() string {
	if r.Paid == 0 {
		return fmt.Sprintf("Equipped %s. Coins: %d\n", r.Skin, r.Coins)
	}
	return fmt.Sprintf("Bought %s for %d coins. Coins: %d\n", r.Skin, r.Paid, r.Coins)
}

// NewShopCommand creates the shop command.
func NewShopCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "List skins for sale",
		Long: `List the skin catalog with prices and what the profile already owns.

Examples:
  knifehit shop
  knifehit shop --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShop(rootOpts, cmd)
		},
	}
}

func runShop(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger(cmd.ErrOrStderr())

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	econ, err := loadEconomy(ctx, st, logger)
	if err != nil {
		return err
	}
	return newFormatter(cmd, opts).Success(newShopView(econ))
}

// NewBuyCommand creates the buy command.
func NewBuyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <skin>",
		Short: "Buy or equip a skin",
		Long: `Buy a skin from the shop and equip it. An owned skin is equipped for free.

A purchase the profile cannot afford changes nothing.

Exit codes:
  0 - Skin bought or equipped
  1 - Not enough coins
  2 - Unknown skin or database error

Examples:
  knifehit buy steel
  knifehit buy classic`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuy(rootOpts, args[0], cmd)
		},
	}
}

func runBuy(opts *RootOptions, skin string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger(cmd.ErrOrStderr())
	formatter := newFormatter(cmd, opts)

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer closeStore(st, logger)

	econ, err := loadEconomy(ctx, st, logger)
	if err != nil {
		return err
	}

	before := econ.Profile().Coins
	bought, err := econ.Purchase(economy.SkinID(skin))
	if err != nil {
		var econErr *economy.Error
		details := map[string]string(nil)
		if errors.As(err, &econErr) {
			details = econErr.Details
		}
		switch {
		case errors.Is(err, economy.ErrUnknownSkin):
			return formatter.Fail(ExitCommandError, CodeUnknownSkin, "purchase failed", err, details)
		case errors.Is(err, economy.ErrInsufficientFunds):
			return formatter.Fail(ExitFailure, CodeInsufficientFunds, "purchase failed", err, details)
		default:
			return WrapExitError(ExitFailure, "purchase failed", err)
		}
	}

	if err := saveEconomy(ctx, st, econ); err != nil {
		return err
	}
	after := econ.Profile().Coins
	logger.Info("skin equipped", "skin", bought.ID, "paid", before-after)

	return formatter.Success(PurchaseResult{
		Skin:  string(bought.ID),
		Price: bought.Price,
		Paid:  before - after,
		Coins: after,
	})
}
