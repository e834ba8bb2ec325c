package cmd

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	httpadapter "storefront/internal/adapters/in/http"
	kafkain "storefront/internal/adapters/in/kafka"
	"storefront/internal/adapters/out/capability"
	"storefront/internal/adapters/out/notify"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/storage"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	signer     *capability.Signer
	links      *capability.Builder
	photos     *storage.LocalPhotoStorage
	location   *time.Location
	dispatcher *notify.Dispatcher

	closers []func() error
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	keys, err := capability.NewKeys([]byte(cfg.LinkSecret))
	if err != nil {
		return nil, err
	}
	signer := capability.NewSigner(keys, nil)
	links, err := capability.NewBuilder(signer, cfg.SiteURL)
	if err != nil {
		return nil, err
	}
	photos, err := storage.NewLocalPhotoStorage(cfg.MediaRoot, cfg.MaxPhotoBytes)
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		signer:     signer,
		links:      links,
		photos:     photos,
		location:   location,
	}
	if c.dispatcher, err = c.newDispatcher(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// newDispatcher enables every channel that is configured.
func (c *CompositionRoot) newDispatcher() (*notify.Dispatcher, error) {
	var channels []notify.Channel

	if c.cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegramChannel(&http.Client{Timeout: c.cfg.NotifySendTimeout}, notify.TelegramConfig{
			APIURL:   c.cfg.TelegramAPIURL,
			BotToken: c.cfg.TelegramBotToken,
			ChatIDs:  c.cfg.TelegramChatIDs,
		}, c.links)
		if err != nil {
			return nil, err
		}
		channels = append(channels, tg)
	}

	if c.cfg.SMTPAddr != "" {
		email, err := notify.NewEmailChannel(notify.EmailConfig{
			Addr:     c.cfg.SMTPAddr,
			Username: c.cfg.SMTPUsername,
			Password: c.cfg.SMTPPassword,
			From:     c.cfg.EmailFrom,
			ShopName: c.cfg.ShopName,
		}, nil)
		if err != nil {
			return nil, err
		}
		channels = append(channels, email)
	}

	if len(c.cfg.KafkaBrokers) > 0 {
		writer := notify.NewOrderChangedWriter(c.cfg.KafkaBrokers)
		c.closers = append(c.closers, writer.Close)
		channels = append(channels, notify.NewKafkaChannel(writer))
	}

	var dedup notify.Deduper
	if c.cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: c.cfg.RedisAddr, Password: c.cfg.RedisPassword})
		c.closers = append(c.closers, rdb.Close)
		dedup = notify.NewRedisDeduper(rdb, c.cfg.DedupTTL)
	}

	if len(channels) == 0 {
		c.logger.Warn("no notification channels configured")
	}
	return notify.NewDispatcher(c.logger, notify.Config{
		Workers:     c.cfg.NotifyWorkers,
		QueueSize:   c.cfg.NotifyQueueSize,
		SendTimeout: c.cfg.NotifySendTimeout,
	}, dedup, channels...), nil
}

// Close releases the clients the root opened.
func (c *CompositionRoot) Close() error {
	var problems []error
	for _, closeFn := range c.closers {
		problems = append(problems, closeFn())
	}
	return errors.Join(problems...)
}

func (c *CompositionRoot) Dispatcher() *notify.Dispatcher { return c.dispatcher }

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.New()
	})
}

func (c *CompositionRoot) checkoutUoW() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.New()
	})
}

func (c *CompositionRoot) addressUoW() commands.AddressUoWFactory {
	return FuncAddressUoWFactory(func() commands.AddressUoW {
		return c.uowFactory.New()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	pricer := services.NewOrderPricer(kernel.Money(c.cfg.DeliveryFee))
	return commands.NewCreateOrderCommandHandler(c.checkoutUoW(), pricer, c.dispatcher)
}

func (c *CompositionRoot) CreateQuickOrderCommandHandler() commands.QuickOrderCommandHandler {
	return commands.NewQuickOrderCommandHandler(c.checkoutUoW(), c.dispatcher, c.cfg.PlaceholderDomain)
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	return commands.NewChangeStatusCommandHandler(c.orderUoW(), c.dispatcher)
}

func (c *CompositionRoot) CreateChangeDeliveryStatusCommandHandler() commands.ChangeDeliveryStatusCommandHandler {
	return commands.NewChangeDeliveryStatusCommandHandler(c.orderUoW(), c.dispatcher)
}

func (c *CompositionRoot) CreateBulkChangeStatusCommandHandler() commands.BulkChangeStatusCommandHandler {
	return commands.NewBulkChangeStatusCommandHandler(c.orderUoW(), c.dispatcher)
}

func (c *CompositionRoot) CreateRequestDeliveryCommandHandler() commands.RequestDeliveryCommandHandler {
	return commands.NewRequestDeliveryCommandHandler(c.orderUoW(), c.dispatcher)
}

func (c *CompositionRoot) CreateSetPaymentStatusCommandHandler() commands.SetPaymentStatusCommandHandler {
	return commands.NewSetPaymentStatusCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateCloseDeliveredOrdersCommandHandler() commands.CloseDeliveredOrdersCommandHandler {
	return commands.NewCloseDeliveredOrdersCommandHandler(c.orderUoW(), c.dispatcher)
}

func (c *CompositionRoot) CreateSaveAddressCommandHandler() commands.SaveAddressCommandHandler {
	return commands.NewSaveAddressCommandHandler(c.addressUoW())
}

func (c *CompositionRoot) CreateDeleteSavedAddressCommandHandler() commands.DeleteSavedAddressCommandHandler {
	return commands.NewDeleteSavedAddressCommandHandler(c.addressUoW())
}

// Handlers builds everything the HTTP server dispatches to.
func (c *CompositionRoot) Handlers() httpadapter.Handlers {
	orders := c.orderUoW()
	return httpadapter.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		QuickOrder:           c.CreateQuickOrderCommandHandler(),
		ChangeStatus:         c.CreateChangeStatusCommandHandler(),
		ChangeDeliveryStatus: c.CreateChangeDeliveryStatusCommandHandler(),
		BulkChangeStatus:     c.CreateBulkChangeStatusCommandHandler(),
		RequestDelivery:      c.CreateRequestDeliveryCommandHandler(),
		SetPaymentStatus:     c.CreateSetPaymentStatusCommandHandler(),
		ConfirmReceipt:       commands.NewConfirmReceiptCommandHandler(orders, c.signer, c.dispatcher),
		CancelOrder:          commands.NewCancelOrderCommandHandler(orders, c.signer, c.dispatcher),
		RateOrder:            commands.NewRateOrderCommandHandler(orders, c.signer, c.dispatcher),
		RepeatOrder:          commands.NewRepeatOrderCommandHandler(orders, c.signer, c.dispatcher),
		RequestCallback:      commands.NewRequestCallbackCommandHandler(orders, c.signer),
		RequestAddressChange: commands.NewRequestAddressChangeCommandHandler(orders, c.signer),
		UploadDeliveryPhoto:  commands.NewUploadDeliveryPhotoCommandHandler(orders, c.signer, c.photos, c.dispatcher),
		SaveAddress:          c.CreateSaveAddressCommandHandler(),
		DeleteSavedAddress:   c.CreateDeleteSavedAddressCommandHandler(),

		GetOrder:           queries.NewGetOrderQueryHandler(c.uowFactory.New().OrderRepository()),
		ListOrders:         queries.NewListOrdersQueryHandler(c.gormDB),
		GetOrderLinks:      queries.NewGetOrderLinksQueryHandler(c.uowFactory.New().OrderRepository(), c.links),
		GetLinkedOrder:     queries.NewGetLinkedOrderQueryHandler(c.signer, c.uowFactory.New().OrderRepository()),
		QuoteCoupon:        queries.NewQuoteCouponQueryHandler(c.uowFactory.New().CouponRepository()),
		GetDeliverySlots:   queries.NewGetDeliverySlotsQueryHandler(services.NewSlotPlanner(c.location)),
		ListSavedAddresses: queries.NewListSavedAddressesQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) HTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.Handlers(), c.logger, c.cfg.StaffKey, c.cfg.MediaURL)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCloseDeliveredOrdersCommandHandler(), jobs.AutoCloseConfig{
		Schedule: c.cfg.AutoCloseSchedule,
		IdleFor:  c.cfg.AutoCloseIdle,
	}, c.logger)
}

// PaymentConsumer is nil when no Kafka brokers are configured.
func (c *CompositionRoot) PaymentConsumer() *kafkain.PaymentConsumer {
	if len(c.cfg.KafkaBrokers) == 0 {
		return nil
	}
	var reader kafkain.MessageReader = kafkain.NewPaymentReader(c.cfg.KafkaBrokers, c.cfg.KafkaConsumerGroup)
	return kafkain.NewPaymentConsumer(c.logger, reader, c.CreateSetPaymentStatusCommandHandler())
}

// MediaRoot is the directory served under the media URL.
func (c *CompositionRoot) MediaRoot() string {
	return c.photos.Root()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncAddressUoWFactory func() commands.AddressUoW

func (f FuncAddressUoWFactory) Create() commands.AddressUoW {
	return f()
}

