package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain/market"
)

// Sender is the part of a discord session used to post sales
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type Config struct {
	BotKey    string
	ChannelId string
	// AssetUrl is formatted with the nft address and token id
	AssetUrl string
	// Decimals of the native denom, the raw amount is shown when 0
	Decimals int32
}

type notifier struct {
	cfg    Config
	sender Sender
}

// NewSession opens a bot session with cfg.BotKey
func NewSession(cfg Config) (*discordgo.Session, error) {
	return discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
}

func NewSaleNotifier(cfg Config, sender Sender) market.SaleNotifier {
	return &notifier{cfg: cfg, sender: sender}
}

func (n *notifier) NotifySale(c ctx.Ctx, sale market.Sale) error {
	price := sale.Price.Amount.String()
	if n.cfg.Decimals > 0 {
		price = decimal.NewFromBigInt(sale.Price.Amount.BigInt(), -n.cfg.Decimals).String()
	}

	title := "Item sold!"
	if sale.SaleKind == market.SaleKindAuction {
		title = "Auction settled!"
	}

	msg := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf(n.cfg.AssetUrl, sale.NftAddress, sale.TokenId),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Offering", Value: sale.OfferingId, Inline: true},
			{Name: "Seller", Value: sale.Seller.String()},
			{Name: "Buyer", Value: sale.Buyer.String()},
			{Name: "Price", Value: fmt.Sprintf("%s %s", price, sale.Price.Denom)},
		},
		Timestamp: sale.Time.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if !sale.RoyaltyFee.IsZero() {
		msg.Fields = append(msg.Fields, &discordgo.MessageEmbedField{Name: "Royalty", Value: fmt.Sprintf("%s %s", sale.RoyaltyFee.String(), sale.Price.Denom)})
	}

	if _, err := n.sender.ChannelMessageSendEmbed(n.cfg.ChannelId, msg); err != nil {
		c.WithFields(map[string]interface{}{"err": err, "offeringId": sale.OfferingId}).Error("discord.ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}
