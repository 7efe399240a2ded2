package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/osse101/GardenSim_Go/internal/domain"
	"github.com/osse101/GardenSim_Go/internal/economy"
	"github.com/osse101/GardenSim_Go/internal/garden"
	"github.com/osse101/GardenSim_Go/internal/gear"
	"github.com/osse101/GardenSim_Go/internal/utils"
)

// gardenService is the part of game.Service the shell drives
type gardenService interface {
	State() domain.GameState
	CompleteProfile(ctx context.Context, profile domain.UserProfile) error
	Plant(ctx context.Context, plotIndex int, seedName string) (garden.PlantResult, error)
	Harvest(ctx context.Context, plotIndex int) (garden.HarvestResult, error)
	ApplyGear(ctx context.Context, plotIndex int, gearName string) (gear.Application, error)
	BuySeed(ctx context.Context, seedName string) (economy.Purchase, error)
	BuyGear(ctx context.Context, gearName string) (economy.Purchase, error)
	SellOne(ctx context.Context, fruitName string) (economy.SaleResult, error)
	SellAll(ctx context.Context) (economy.SaleResult, error)
	QuoteValue(ctx context.Context, fruitName string, quantity int) (economy.Quote, error)
	Redeem(ctx context.Context, code string) (economy.RedeemResult, error)
}

// errQuit stops the read loop
var errQuit = errors.New("quit")

type commandFunc func(ctx context.Context, args []string) error

// Shell is a line-oriented front end over the game service
type Shell struct {
	svc      gardenService
	out      io.Writer
	commands map[string]commandFunc
}

// NewShell creates a shell writing to out
func NewShell(svc gardenService, out io.Writer) *Shell {
	s := &Shell{svc: svc, out: out}
	s.commands = map[string]commandFunc{
		"help":     s.help,
		"status":   s.status,
		"profile":  s.profile,
		"plant":    s.plant,
		"harvest":  s.harvest,
		"water":    s.useGear(gearWateringCan),
		"sprinkle": s.useGear(gearSprinkler),
		"buy":      s.buy,
		"sell":     s.sell,
		"worth":    s.worth,
		"redeem":   s.redeem,
		"quit":     s.quit,
		"exit":     s.quit,
	}
	return s
}

// Run reads commands from in until quit, EOF or ctx is cancelled
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.println(msgWelcome)
	if !s.svc.State().HasProfile() {
		s.println(msgProfileNeeded)
	}

	scanner := bufio.NewScanner(in)
	for {
		s.printf("%s", promptText)
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		if err := s.Execute(ctx, scanner.Text()); errors.Is(err, errQuit) {
			return nil
		}
	}
}

// Execute runs one command line. User-facing failures are printed, only
// errQuit is returned.
func (s *Shell) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, ok := s.commands[strings.ToLower(fields[0])]
	if !ok {
		s.printf(msgUnknownCommand+"\n", fields[0])
		return nil
	}

	err := cmd(ctx, fields[1:])
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errQuit):
		return err
	case errors.Is(err, domain.ErrProfileRequired):
		s.println(msgProfileNeeded)
	default:
		s.printf(msgError+"\n", err)
	}
	return nil
}

func (s *Shell) help(context.Context, []string) error {
	s.println(msgHelp)
	return nil
}

func (s *Shell) quit(context.Context, []string) error {
	s.println(msgGoodbye)
	return errQuit
}

func (s *Shell) status(context.Context, []string) error {
	state := s.svc.State()

	s.printf(msgStatusHeader+"\n", state.Profile.DisplayName(), utils.FormatCoins(state.Coins))
	s.printf(msgStatusEvents+"\n", joinOrNone(state.ActiveEvents))
	s.printf(msgStatusGear+"\n", joinOrNone(state.OwnedGear))
	s.printf(msgStatusInventory+"\n", formatInventory(state.Inventory))

	planted := 0
	for i, plot := range state.Plots {
		if plot == nil {
			continue
		}
		planted++
		s.printf(msgStatusPlot+"\n", i, plot.Icon, plot.SeedName, plot.GrowthPercent)
	}
	if planted == 0 {
		s.println(msgStatusPlotsEmpty)
	}
	return nil
}

func (s *Shell) profile(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return s.usage("profile <first> <last> <age> <boy|girl>")
	}
	age, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("%w: age must be a number", domain.ErrInvalidInput)
	}

	p := domain.UserProfile{FirstName: args[0], LastName: args[1], Age: age, Gender: strings.ToLower(args[3])}
	if err := s.svc.CompleteProfile(ctx, p); err != nil {
		return err
	}
	s.printf(msgProfileDone+"\n", p.DisplayName())
	return nil
}

func (s *Shell) plant(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return s.usage("plant <plot> <seed>")
	}
	index, err := parsePlot(args[0])
	if err != nil {
		return err
	}

	result, err := s.svc.Plant(ctx, index, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if result.Instant {
		s.printf(msgPlantedInstant+"\n", result.Plot.SeedName, index)
	} else {
		s.printf(msgPlanted+"\n", result.Plot.SeedName, index)
	}
	return nil
}

func (s *Shell) harvest(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return s.usage("harvest <plot>")
	}
	index, err := parsePlot(args[0])
	if err != nil {
		return err
	}

	result, err := s.svc.Harvest(ctx, index)
	if err != nil {
		return err
	}
	s.printf(msgHarvested+"\n", result.FruitName, index)
	return nil
}

func (s *Shell) useGear(gearName string) commandFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) != 1 {
			return s.usage("<water|sprinkle> <plot>")
		}
		index, err := parsePlot(args[0])
		if err != nil {
			return err
		}

		app, err := s.svc.ApplyGear(ctx, index, gearName)
		if err != nil {
			return err
		}
		s.printf(msgGearApplied+"\n", app.Gear, index, app.Plot.GrowthPercent, app.Plot.Value)
		return nil
	}
}

func (s *Shell) buy(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return s.usage("buy seed <name> | buy gear <name>")
	}
	name := strings.Join(args[1:], " ")

	var (
		purchase economy.Purchase
		err      error
	)
	switch strings.ToLower(args[0]) {
	case "seed":
		purchase, err = s.svc.BuySeed(ctx, name)
	case "gear":
		purchase, err = s.svc.BuyGear(ctx, name)
	default:
		return s.usage("buy seed <name> | buy gear <name>")
	}
	if err != nil {
		return err
	}
	s.printf(msgBought+"\n", purchase.Item, utils.FormatCoins(purchase.Price), utils.FormatCoins(purchase.Balance))
	return nil
}

func (s *Shell) sell(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.usage("sell <fruit> | sell all")
	}

	var (
		result economy.SaleResult
		err    error
	)
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		result, err = s.svc.SellAll(ctx)
	} else {
		result, err = s.svc.SellOne(ctx, strings.Join(args, " "))
	}
	if err != nil {
		return err
	}
	s.println(result.Message)
	return nil
}

func (s *Shell) worth(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.usage("worth <fruit> [quantity]")
	}
	quantity := defaultQuoteCount
	if n, err := strconv.Atoi(args[len(args)-1]); err == nil && len(args) > 1 {
		quantity = n
		args = args[:len(args)-1]
	}

	quote, err := s.svc.QuoteValue(ctx, strings.Join(args, " "), quantity)
	if err != nil {
		return err
	}
	s.printf(msgWorth+"\n", quote.Quantity, quote.Item, utils.FormatCoins(quote.Total),
		utils.FormatCoins(quote.UnitValue), quote.GearMultiplier, quote.EventMultiplier)
	return nil
}

func (s *Shell) redeem(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.usage("redeem <code>")
	}
	result, err := s.svc.Redeem(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	s.println(result.Message)
	return nil
}

func (s *Shell) usage(text string) error {
	return fmt.Errorf("%w: "+msgUsage, domain.ErrInvalidInput, text)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

func parsePlot(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: plot must be a number, got %q", domain.ErrInvalidInput, raw)
	}
	return index, nil
}

func joinOrNone(names domain.NameSet) string {
	if len(names) == 0 {
		return msgNone
	}
	return strings.Join(names, ", ")
}

func formatInventory(inv domain.Inventory) string {
	if len(inv) == 0 {
		return msgNone
	}
	items := make([]string, 0, len(inv))
	for item := range inv {
		items = append(items, item)
	}
	sort.Strings(items)

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item, inv[item]))
	}
	return strings.Join(parts, ", ")
}
