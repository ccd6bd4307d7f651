package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

const (
	colorPositive = 0x2ecc71
	colorNegative = 0xe74c3c
	colorNeutral  = 0x95a5a6
)

// Discord sends tick notifications through a shared gateway session.
type Discord struct {
	session *discordgo.Session
}

func NewDiscord(session *discordgo.Session) *Discord {
	return &Discord{session: session}
}

func (d *Discord) EditCompanyStatus(ctx context.Context, company game.Company, event game.EventSpec, delta int64) error {
	if company.ThreadID == "" || company.StatusMessageID == "" {
		return nil
	}
	embed := &discordgo.MessageEmbed{
		Title: company.Name,
		Color: categoryColor(event.Category),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tier", Value: company.Tier.String(), Inline: true},
			{Name: "Income", Value: fmt.Sprintf("%d / tick", company.CurrentIncome), Inline: true},
			{Name: "Latest event", Value: fmt.Sprintf("%s (%+d)", event.Description, delta)},
		},
	}
	_, err := d.session.ChannelMessageEditEmbed(company.ThreadID, company.StatusMessageID, embed, discordgo.WithContext(ctx))
	return err
}

func (d *Discord) PostEventToThread(ctx context.Context, company game.Company, event game.EventSpec, delta int64) error {
	if company.ThreadID == "" {
		return nil
	}
	var line string
	switch event.Category {
	case game.EventNeutral:
		line = fmt.Sprintf("**%s** — %s.", company.Name, event.Description)
	default:
		line = fmt.Sprintf("**%s** — %s. Income %+d (now %d).", company.Name, event.Description, delta, company.CurrentIncome)
	}
	_, err := d.session.ChannelMessageSend(company.ThreadID, line, discordgo.WithContext(ctx))
	return err
}

func (d *Discord) EditStockBoard(ctx context.Context, settings game.GuildSettings, quotes []game.StockQuote) error {
	if settings.StockBoardChannelID == "" || settings.StockBoardMessageID == "" {
		return nil
	}
	embed := &discordgo.MessageEmbed{
		Title: "Stock Market",
		Color: colorNeutral,
	}
	for _, q := range quotes {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s", trendArrow(q), q.Symbol),
			Value:  fmt.Sprintf("%d (%+d)", q.Price, q.Price-q.Previous),
			Inline: true,
		})
	}
	_, err := d.session.ChannelMessageEditEmbed(settings.StockBoardChannelID, settings.StockBoardMessageID, embed, discordgo.WithContext(ctx))
	return err
}

func (d *Discord) DMBorrower(ctx context.Context, borrowerID string, loan game.Loan, seized int64) error {
	ch, err := d.session.UserChannelCreate(borrowerID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Your loan of %d came due. %d was seized from your balance.", loan.TotalOwed, seized)
	_, err = d.session.ChannelMessageSend(ch.ID, msg, discordgo.WithContext(ctx))
	return err
}

func (d *Discord) NotifyCompanySeized(ctx context.Context, company game.Company, loan game.Loan) error {
	if company.ThreadID == "" {
		return nil
	}
	msg := fmt.Sprintf("**%s** has been liquidated to settle a defaulted loan of %d.", company.Name, loan.TotalOwed)
	_, err := d.session.ChannelMessageSend(company.ThreadID, msg, discordgo.WithContext(ctx))
	return err
}

func (d *Discord) AnnounceTax(ctx context.Context, settings game.GuildSettings, total int64, playersTaxed int) error {
	if settings.TaxChannelID == "" {
		return nil
	}
	msg := fmt.Sprintf("Tax season: collected %d from %d players at %d%%.", total, playersTaxed, settings.TaxRate)
	_, err := d.session.ChannelMessageSend(settings.TaxChannelID, msg, discordgo.WithContext(ctx))
	return err
}

func categoryColor(c game.EventCategory) int {
	switch c {
	case game.EventPositive:
		return colorPositive
	case game.EventNegative:
		return colorNegative
	default:
		return colorNeutral
	}
}

func trendArrow(q game.StockQuote) string {
	switch {
	case q.Price > q.Previous:
		return "📈"
	case q.Price < q.Previous:
		return "📉"
	default:
		return "➖"
	}
}
