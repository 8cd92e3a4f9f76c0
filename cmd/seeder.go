package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/review-marketplace/internal/auth"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
	marketDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/market"
	reviewDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/review"
	userDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/user"
	"github.com/frahmantamala/review-marketplace/internal/serial"
	serialPostgres "github.com/frahmantamala/review-marketplace/internal/serial/postgres"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearAll(gormDB)
		}

		var existing int64
		gormDB.Model(&marketDatamodel.Market{}).Where("slug = ?", "de").Count(&existing)
		if existing > 0 {
			fmt.Println("sample data already present; use --clear to reseed")
			return
		}

		if err := seedAll(gormDB, cfg.Security.BCryptCost); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
		fmt.Println("Seeded sample markets, users, catalog and reviews")
	},
}

func clearAll(db *gorm.DB) {
	// child tables first
	for _, table := range []string{
		"review_votes", "review_comments", "reviews",
		"barcodes", "products", "brands", "categories",
		"user_roles", "users", "serial_counters", "markets",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

// seedAll loads the demo dataset: two markets, three users covering every
// role, a small category tree with brands and products in the German market
// and a handful of reviews with votes and comments.
func seedAll(db *gorm.DB, bcryptCost int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		serials := serialPostgres.NewAllocator(tx)

		newMarket := func(slug, name string) (*marketDatamodel.Market, error) {
			s, err := serials.Next(serial.KindMarket, serial.GlobalMarketID)
			if err != nil {
				return nil, err
			}
			m := &marketDatamodel.Market{Slug: slug, Name: name, Serial: s}
			return m, tx.Create(m).Error
		}

		de, err := newMarket("de", "Germany")
		if err != nil {
			return err
		}
		if _, err := newMarket("us", "United States"); err != nil {
			return err
		}

		hash, err := auth.HashPassword("123", bcryptCost)
		if err != nil {
			return err
		}
		newUser := func(name string, roles ...auth.Role) (*userDatamodel.User, error) {
			u := &userDatamodel.User{Name: name, PasswordHash: hash, IsActive: true}
			if err := tx.Create(u).Error; err != nil {
				return nil, err
			}
			for _, r := range roles {
				if err := tx.Create(&userDatamodel.UserRole{UserID: u.ID, Role: string(r)}).Error; err != nil {
					return nil, err
				}
			}
			return u, nil
		}

		justus, err := newUser("justus", auth.RoleAdmin)
		if err != nil {
			return err
		}
		peter, err := newUser("peter", auth.RoleModerator)
		if err != nil {
			return err
		}
		bob, err := newUser("bob", auth.RoleUser)
		if err != nil {
			return err
		}

		newCategory := func(name string, parent *catalogDatamodel.Category) (*catalogDatamodel.Category, error) {
			s, err := serials.Next(serial.KindCategory, de.ID)
			if err != nil {
				return nil, err
			}
			c := &catalogDatamodel.Category{MarketID: de.ID, Serial: s, Name: name}
			if parent != nil {
				c.ParentID = &parent.ID
			}
			return c, tx.Create(c).Error
		}

		food, err := newCategory("Lebensmittel", nil)
		if err != nil {
			return err
		}
		sweets, err := newCategory("Süßigkeiten", food)
		if err != nil {
			return err
		}
		gummies, err := newCategory("Fruchtgummi", sweets)
		if err != nil {
			return err
		}
		drinks, err := newCategory("Getränke", food)
		if err != nil {
			return err
		}
		softdrinks, err := newCategory("Softdrinks", drinks)
		if err != nil {
			return err
		}

		newBrand := func(name string) (*catalogDatamodel.Brand, error) {
			s, err := serials.Next(serial.KindBrand, de.ID)
			if err != nil {
				return nil, err
			}
			b := &catalogDatamodel.Brand{MarketID: de.ID, Serial: s, Name: name}
			return b, tx.Create(b).Error
		}

		haribo, err := newBrand("Haribo")
		if err != nil {
			return err
		}
		cocaCola, err := newBrand("Coca Cola")
		if err != nil {
			return err
		}

		newProduct := func(name, description string, cat *catalogDatamodel.Category, b *catalogDatamodel.Brand, barcode string) (*catalogDatamodel.Product, error) {
			s, err := serials.Next(serial.KindProduct, de.ID)
			if err != nil {
				return nil, err
			}
			p := &catalogDatamodel.Product{
				MarketID:    de.ID,
				Serial:      s,
				Name:        name,
				Description: description,
				CategoryID:  cat.ID,
			}
			if b != nil {
				p.BrandID = &b.ID
			}
			if err := tx.Create(p).Error; err != nil {
				return nil, err
			}
			if barcode != "" {
				if err := tx.Create(&catalogDatamodel.Barcode{Value: barcode, ProductID: p.ID}).Error; err != nil {
					return nil, err
				}
			}
			return p, nil
		}

		goldbears, err := newProduct("Goldbären", "Fruchtgummi mit Fruchtsaft", gummies, haribo, "4001686301166")
		if err != nil {
			return err
		}
		cola, err := newProduct("Coca-Cola Classic", "Koffeinhaltige Limonade", softdrinks, cocaCola, "5449000000996")
		if err != nil {
			return err
		}
		if _, err := newProduct("Color-Rado", "Fruchtgummi und Lakritz Mischung", gummies, haribo, "4001686326718"); err != nil {
			return err
		}
		if _, err := newProduct("Fanta Orange", "Limonade mit Orangengeschmack", softdrinks, cocaCola, "5449000011527"); err != nil {
			return err
		}
		if _, err := newProduct("Hausbrot", "Einfaches Roggenbrot", food, nil, ""); err != nil {
			return err
		}

		newReview := func(p *catalogDatamodel.Product, u *userDatamodel.User, title, text string, rating int) (*reviewDatamodel.Review, error) {
			s, err := serials.Next(serial.KindReview, de.ID)
			if err != nil {
				return nil, err
			}
			rv := &reviewDatamodel.Review{
				MarketID:  de.ID,
				Serial:    s,
				ProductID: p.ID,
				UserID:    u.ID,
				Title:     title,
				Text:      text,
				Rating:    rating,
			}
			return rv, tx.Create(rv).Error
		}

		bearsReview, err := newReview(goldbears, bob, "Ein Klassiker", "Schmecken wie früher, klare Empfehlung.", 5)
		if err != nil {
			return err
		}
		if _, err := newReview(goldbears, peter, "Zu süß für mich", "Gute Qualität, aber mir persönlich zu süß.", 3); err != nil {
			return err
		}
		colaReview, err := newReview(cola, peter, "Erfrischend", "Kalt am besten.", 4)
		if err != nil {
			return err
		}

		votes := []reviewDatamodel.ReviewVote{
			{ReviewID: bearsReview.ID, UserID: peter.ID, Upvote: true},
			{ReviewID: bearsReview.ID, UserID: justus.ID, Upvote: true},
			{ReviewID: colaReview.ID, UserID: bob.ID, Upvote: false},
		}
		for i := range votes {
			if err := tx.Create(&votes[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&reviewDatamodel.ReviewComment{
			ReviewID: bearsReview.ID,
			UserID:   justus.ID,
			Text:     "Dem kann ich nur zustimmen.",
		}).Error; err != nil {
			return err
		}

		// rating aggregates are event-driven at runtime; backfill them here
		return tx.Exec(`
			UPDATE products SET
				rating_count = (SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id),
				average_rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE reviews.product_id = products.id), 0)`).Error
	})
}
