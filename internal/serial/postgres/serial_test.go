package postgres_test

import (
	"sync"
	"testing"

	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
	"github.com/frahmantamala/review-marketplace/internal/serial"
	serialPostgres "github.com/frahmantamala/review-marketplace/internal/serial/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSerialPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Serial Postgres Suite")
}

var _ = Describe("Serial Allocator", func() {
	var (
		db        *gorm.DB
		allocator *serialPostgres.Allocator
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&catalogDatamodel.SerialCounter{})
		Expect(err).NotTo(HaveOccurred())

		allocator = serialPostgres.NewAllocator(db)
	})

	It("starts at 1 and increases by 1", func() {
		for want := int64(1); want <= 5; want++ {
			got, err := allocator.Next(serial.KindProduct, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		}
	})

	It("counts each kind independently within a market", func() {
		first, err := allocator.Next(serial.KindProduct, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(first).To(Equal(int64(1)))

		_, err = allocator.Next(serial.KindProduct, 1)
		Expect(err).NotTo(HaveOccurred())

		got, err := allocator.Next(serial.KindCategory, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(int64(1)))
	})

	It("counts each market independently", func() {
		_, err := allocator.Next(serial.KindProduct, 1)
		Expect(err).NotTo(HaveOccurred())
		_, err = allocator.Next(serial.KindProduct, 1)
		Expect(err).NotTo(HaveOccurred())

		got, err := allocator.Next(serial.KindProduct, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(int64(1)))
	})

	It("keeps the counter value after the entity kind is exhausted elsewhere", func() {
		for i := 0; i < 3; i++ {
			_, err := allocator.Next(serial.KindReview, 7)
			Expect(err).NotTo(HaveOccurred())
		}

		var counter catalogDatamodel.SerialCounter
		err := db.Where("kind = ? AND market_id = ?", serial.KindReview, int64(7)).First(&counter).Error
		Expect(err).NotTo(HaveOccurred())
		Expect(counter.Value).To(Equal(int64(3)))
	})

	It("hands out pairwise distinct serials to concurrent callers", func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		// one connection keeps the in-memory database shared across goroutines
		sqlDB.SetMaxOpenConns(1)

		const n = 32
		results := make(chan int64, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				got, allocErr := allocator.Next(serial.KindProduct, 1)
				Expect(allocErr).NotTo(HaveOccurred())
				results <- got
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[int64]bool, n)
		for got := range results {
			Expect(seen[got]).To(BeFalse(), "serial %d handed out twice", got)
			seen[got] = true
			Expect(got).To(And(BeNumerically(">=", 1), BeNumerically("<=", n)))
		}
		Expect(seen).To(HaveLen(n))
	})

	It("releases a serial when the allocating transaction rolls back", func() {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, txErr := allocator.WithDB(tx).Next(serial.KindBrand, 1)
			Expect(txErr).NotTo(HaveOccurred())
			return gorm.ErrInvalidTransaction
		})
		Expect(err).To(HaveOccurred())

		got, err := allocator.Next(serial.KindBrand, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(int64(1)))
	})
})
