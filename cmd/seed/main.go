package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"spotbook/internal/config"
	"spotbook/internal/db"
	"spotbook/internal/logger"
	"spotbook/internal/model"
	"spotbook/internal/repository"
	"spotbook/internal/service"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtures struct {
	Users []struct {
		FirstName string `yaml:"firstName"`
		LastName  string `yaml:"lastName"`
		Email     string `yaml:"email"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
	} `yaml:"users"`
	Spots []struct {
		Owner       string   `yaml:"owner"`
		Address     string   `yaml:"address"`
		City        string   `yaml:"city"`
		State       string   `yaml:"state"`
		Country     string   `yaml:"country"`
		Lat         float64  `yaml:"lat"`
		Lng         float64  `yaml:"lng"`
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Price       string   `yaml:"price"`
		Images      []string `yaml:"images"`
	} `yaml:"spots"`
	Reviews []struct {
		Spot   string   `yaml:"spot"`
		Author string   `yaml:"author"`
		Review string   `yaml:"review"`
		Stars  int      `yaml:"stars"`
		Images []string `yaml:"images"`
	} `yaml:"reviews"`
	Bookings []struct {
		Spot        string `yaml:"spot"`
		Guest       string `yaml:"guest"`
		StartInDays int    `yaml:"startInDays"`
		Nights      int    `yaml:"nights"`
	} `yaml:"bookings"`
}

type repos struct {
	users    repository.UserRepository
	spots    repository.SpotRepository
	reviews  repository.ReviewRepository
	bookings repository.BookingRepository
	images   repository.ImageRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("starting seed")

	var data fixtures
	if err := yaml.Unmarshal(fixturesYAML, &data); err != nil {
		log.Fatalf("parse fixtures: %v", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := db.Migrate(gormDB, cfg.DBDriver, cfg.ResetDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.WithField("reset", cfg.ResetDB).Info("database migrations completed")

	r := repos{
		users:    repository.NewUserRepository(gormDB),
		spots:    repository.NewSpotRepository(gormDB),
		reviews:  repository.NewReviewRepository(gormDB),
		bookings: repository.NewBookingRepository(gormDB),
		images:   repository.NewImageRepository(gormDB),
	}

	ctx := context.Background()
	if len(data.Users) > 0 {
		_, err := r.users.FindByCredential(ctx, data.Users[0].Username)
		switch {
		case err == nil:
			log.Info("fixtures already present, set RESET_DB=true to reseed")
			os.Exit(0)
		case !errors.Is(err, repository.ErrNotFound):
			log.Fatalf("check existing users: %v", err)
		}
	}

	counts, err := seed(ctx, r, &data, time.Now())
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.WithFields(logrus.Fields(counts)).Info("seed completed")
}

func seed(ctx context.Context, r repos, data *fixtures, now time.Time) (map[string]interface{}, error) {
	userIDs := make(map[string]uint, len(data.Users))
	for _, u := range data.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		user := &model.User{
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Email:        u.Email,
			Username:     u.Username,
			PasswordHash: string(hash),
		}
		if err := r.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.Username, err)
		}
		userIDs[u.Username] = user.ID
	}

	spotIDs := make(map[string]uint, len(data.Spots))
	images := 0
	for _, s := range data.Spots {
		ownerID, ok := userIDs[s.Owner]
		if !ok {
			return nil, fmt.Errorf("spot %s: unknown owner %s", s.Name, s.Owner)
		}
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, fmt.Errorf("spot %s: invalid price %q: %w", s.Name, s.Price, err)
		}
		spot := &model.Spot{
			OwnerID:     ownerID,
			Address:     s.Address,
			City:        s.City,
			State:       s.State,
			Country:     s.Country,
			Lat:         s.Lat,
			Lng:         s.Lng,
			Name:        s.Name,
			Description: s.Description,
			Price:       price,
		}
		if err := r.spots.Create(ctx, spot); err != nil {
			return nil, fmt.Errorf("create spot %s: %w", s.Name, err)
		}
		spotIDs[s.Name] = spot.ID
		for _, url := range s.Images {
			if err := r.images.Create(ctx, model.NewImage(url, model.SpotTarget{SpotID: spot.ID})); err != nil {
				return nil, fmt.Errorf("spot %s image: %w", s.Name, err)
			}
			images++
		}
	}

	for _, rv := range data.Reviews {
		review := &model.Review{
			SpotID: spotIDs[rv.Spot],
			UserID: userIDs[rv.Author],
			Review: rv.Review,
			Stars:  rv.Stars,
		}
		if review.SpotID == 0 || review.UserID == 0 {
			return nil, fmt.Errorf("review by %s on %s: unknown reference", rv.Author, rv.Spot)
		}
		if err := r.reviews.Create(ctx, review); err != nil {
			return nil, fmt.Errorf("create review by %s: %w", rv.Author, err)
		}
		for _, url := range rv.Images {
			if err := r.images.Create(ctx, model.NewImage(url, model.ReviewTarget{ReviewID: review.ID})); err != nil {
				return nil, fmt.Errorf("review image: %w", err)
			}
			images++
		}
	}

	today := service.Today(now)
	for _, b := range data.Bookings {
		start := today.AddDate(0, 0, b.StartInDays)
		booking := &model.Booking{
			SpotID:    spotIDs[b.Spot],
			UserID:    userIDs[b.Guest],
			StartDate: datatypes.Date(start),
			EndDate:   datatypes.Date(start.AddDate(0, 0, b.Nights)),
		}
		if booking.SpotID == 0 || booking.UserID == 0 {
			return nil, fmt.Errorf("booking by %s on %s: unknown reference", b.Guest, b.Spot)
		}
		if err := r.bookings.Create(ctx, booking); err != nil {
			return nil, fmt.Errorf("create booking by %s: %w", b.Guest, err)
		}
	}

	return map[string]interface{}{
		"users":    len(userIDs),
		"spots":    len(spotIDs),
		"reviews":  len(data.Reviews),
		"bookings": len(data.Bookings),
		"images":   images,
	}, nil
}
