package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"reparto_tracker/internal/apperr"
	"reparto_tracker/internal/models"
	"reparto_tracker/internal/ports"
	"reparto_tracker/internal/validation"
)

// Fixtures is the YAML layout accepted by the seed command.
type Fixtures struct {
	Zones   []ZoneFixture   `yaml:"zones"`
	Clients []ClientFixture `yaml:"clients"`
	Drivers []DriverFixture `yaml:"drivers"`
}

type ZoneFixture struct {
	Name string `yaml:"name"`
}

type ClientFixture struct {
	Name          string           `yaml:"name"`
	Address       *string          `yaml:"address"`
	Phone         *string          `yaml:"phone"`
	Email         *string          `yaml:"email"`
	DropOffPoints []DropOffFixture `yaml:"dropoff_points"`
}

type DropOffFixture struct {
	Name     string   `yaml:"name"`
	Address  *string  `yaml:"address"`
	TimeFrom *string  `yaml:"time_from"`
	TimeTo   *string  `yaml:"time_to"`
	Tariff   *float64 `yaml:"tariff"`
	Phone    *string  `yaml:"phone"`
}

type DriverFixture struct {
	Name           string  `yaml:"name"`
	Identification *string `yaml:"identification"`
	Phone          *string `yaml:"phone"`
	Vehicle        *string `yaml:"vehicle"`
}

// SeedResult counts the rows inserted by ApplyFixtures.
type SeedResult struct {
	Zones, Clients, DropOffPoints, Drivers int
}

var seedCmd = &cobra.Command{
	Use:   "seed <fixtures.yaml>",
	Short: "Load zones, clients, drop-off points and drivers from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.requireDB(); err != nil {
			return err
		}
		_, err = seedFile(cmd.Context(), a.store, args[0])
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedFile(ctx context.Context, repo ports.CatalogRepository, path string) (SeedResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()

	fx, err := LoadFixtures(f)
	if err != nil {
		return SeedResult{}, err
	}
	res, err := ApplyFixtures(ctx, repo, fx)
	if err != nil {
		return res, err
	}
	logrus.WithFields(logrus.Fields{
		"zones":          res.Zones,
		"clients":        res.Clients,
		"dropoff_points": res.DropOffPoints,
		"drivers":        res.Drivers,
	}).Info("Seed complete")
	return res, nil
}

func LoadFixtures(r io.Reader) (Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return fx, fmt.Errorf("parse fixtures: %w", err)
	}
	return fx, nil
}

// ApplyFixtures validates and inserts every fixture. It stops at the first invalid
// or rejected row.
func ApplyFixtures(ctx context.Context, repo ports.CatalogRepository, fx Fixtures) (SeedResult, error) {
	var res SeedResult

	for i, z := range fx.Zones {
		if z.Name == "" {
			return res, fmt.Errorf("zones[%d]: name is required", i)
		}
		zone := models.Zone{Name: z.Name}
		if err := repo.CreateZone(ctx, &zone); err != nil {
			return res, fmt.Errorf("zones[%d]: %w", i, err)
		}
		res.Zones++
	}

	for i, c := range fx.Clients {
		if c.Name == "" {
			return res, fmt.Errorf("clients[%d]: name is required", i)
		}
		client := models.Client{Name: c.Name, Address: c.Address, Phone: c.Phone, Email: c.Email}
		if err := repo.CreateClient(ctx, &client); err != nil {
			return res, fmt.Errorf("clients[%d]: %w", i, err)
		}
		res.Clients++

		for j, p := range c.DropOffPoints {
			sub := validation.DropOffSubmission{
				ClientID: client.ID.String(),
				Name:     p.Name,
				Address:  p.Address,
				TimeFrom: p.TimeFrom,
				TimeTo:   p.TimeTo,
				Phone:    p.Phone,
			}
			if p.Tariff != nil {
				sub.Tariff = *p.Tariff
			}
			point, v := validation.ValidateDropOffPoint(sub)
			if !v.Empty() {
				return res, fmt.Errorf("clients[%d].dropoff_points[%d]: %w", i, j, apperr.Invalid(v))
			}
			if err := repo.CreateDropOffPoint(ctx, &point); err != nil {
				return res, fmt.Errorf("clients[%d].dropoff_points[%d]: %w", i, j, err)
			}
			res.DropOffPoints++
		}
	}

	for i, d := range fx.Drivers {
		driver, v := validation.ValidateDeliveryPerson(validation.DeliveryPersonSubmission{
			Name:           d.Name,
			Identification: d.Identification,
			Phone:          d.Phone,
			Vehicle:        d.Vehicle,
		})
		if !v.Empty() {
			return res, fmt.Errorf("drivers[%d]: %w", i, apperr.Invalid(v))
		}
		if err := repo.CreateDriver(ctx, &driver); err != nil {
			return res, fmt.Errorf("drivers[%d]: %w", i, err)
		}
		res.Drivers++
	}
	return res, nil
}
