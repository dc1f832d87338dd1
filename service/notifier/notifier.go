package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
)

const defaultPollInterval = 30 * time.Second

type NotifierCfg struct {
	ChainId          domain.ChainId
	DiscordBotKey    string
	DiscordChannelId string
	SiteUrl          string
	EventRepo        marketplace.EventRepo
	PayTokenRepo     domain.PayTokenRepo
	PollInterval     time.Duration
}

// Notifier tails the marketplace event stream and posts sale and
// auction-close embeds to a Discord channel. It is read-only over the event
// store and fully decoupled from settlement.
type Notifier struct {
	chainId      domain.ChainId
	channelId    string
	siteUrl      string
	eventRepo    marketplace.EventRepo
	paytokenRepo domain.PayTokenRepo
	pollInterval time.Duration
	discord      *discordgo.Session
	lastSeen     time.Time
	stoppedCh    chan interface{}
}

func New(cfg *NotifierCfg) (*Notifier, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.DiscordBotKey))
	if err != nil {
		return nil, err
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &Notifier{
		chainId:      cfg.ChainId,
		channelId:    cfg.DiscordChannelId,
		siteUrl:      cfg.SiteUrl,
		eventRepo:    cfg.EventRepo,
		paytokenRepo: cfg.PayTokenRepo,
		pollInterval: pollInterval,
		discord:      discord,
		lastSeen:     time.Now(),
		stoppedCh:    make(chan interface{}),
	}, nil
}

func (n *Notifier) Start(ctx bCtx.Ctx) {
	go func() {
		defer close(n.stoppedCh)

		ticker := time.NewTicker(n.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := n.poll(ctx); err != nil {
					ctx.WithFields(log.Fields{
						"err":     err,
						"chainId": n.chainId,
					}).Error("notifier poll failed")
				}
			}
		}
	}()
}

func (n *Notifier) Wait() {
	<-n.stoppedCh
}

func (n *Notifier) poll(ctx bCtx.Ctx) error {
	events, err := n.eventRepo.FindAll(ctx,
		marketplace.EventWithChainId(n.chainId),
		marketplace.EventWithTimeGT(n.lastSeen),
	)
	if err != nil {
		return err
	}

	// the repo returns newest first; replay in event order
	for i := len(events) - 1; i >= 0; i-- {
		evt := events[i]
		if err := n.processEvent(ctx, evt); err != nil {
			return err
		}
		n.lastSeen = evt.Time
	}
	return nil
}

func (n *Notifier) processEvent(ctx bCtx.Ctx, evt *marketplace.Event) error {
	switch evt.Type {
	case marketplace.EventTypeNewSale:
		return n.notifySale(ctx, evt)
	case marketplace.EventTypeAuctionClosed:
		return n.notifyAuctionClosed(ctx, evt)
	default:
		return nil
	}
}

func (n *Notifier) currencySymbol(ctx bCtx.Ctx, currency domain.Address) string {
	paytoken, err := n.paytokenRepo.FindOne(ctx, n.chainId, currency)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId":  n.chainId,
			"payToken": currency,
		}).Warn("unknown pay token")
		return string(currency)
	}
	return paytoken.Symbol
}

func (n *Notifier) notifySale(ctx bCtx.Ctx, evt *marketplace.Event) error {
	sale := evt.Sale
	if sale == nil {
		return nil
	}

	msg := &discordgo.MessageEmbed{
		Title:       "Item sold!",
		Description: fmt.Sprintf("%s/listing/%d/%d", n.siteUrl, evt.ChainId, sale.ListingId),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Collection", Value: string(sale.AssetContract)},
			{Name: "Seller", Value: string(sale.Lister)},
			{Name: "Buyer", Value: string(sale.Buyer)},
			{Name: "Quantity", Value: fmt.Sprint(sale.QuantityBought)},
			{Name: "Price", Value: fmt.Sprintf("%s %s", sale.DisplayPrice, n.currencySymbol(ctx, sale.Currency))},
		},
	}

	_, err := n.discord.ChannelMessageSendEmbed(n.channelId, msg)
	return err
}

func (n *Notifier) notifyAuctionClosed(ctx bCtx.Ctx, evt *marketplace.Event) error {
	closed := evt.AuctionClosed
	if closed == nil {
		return nil
	}

	title := "Auction closed!"
	fields := []*discordgo.MessageEmbedField{
		{Name: "Creator", Value: string(closed.AuctionCreator)},
	}
	if closed.Cancelled {
		title = "Auction cancelled"
	} else {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Winning bidder", Value: string(closed.WinningBidder)})
	}

	msg := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("%s/listing/%d/%d", n.siteUrl, evt.ChainId, closed.ListingId),
		Fields:      fields,
	}

	_, err := n.discord.ChannelMessageSendEmbed(n.channelId, msg)
	return err
}
