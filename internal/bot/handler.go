package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/battle"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/dex"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/ratelimit"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/store"
)

// The bot only reads the catalog; it must not be shared with a driver that
// mutates it.
type module struct {
	s          *discordgo.Session
	appId      string
	scopeGuild string
	catalog    *dex.Catalog
	history    store.Store
	battleLim  *ratelimit.Cooldowns
	log        *zap.Logger
}

func Setup(
	session *discordgo.Session,
	appId, scopeGuild string,
	catalog *dex.Catalog,
	history store.Store,
	battleLim *ratelimit.Cooldowns,
	log *zap.Logger,
) (func(), error) {
	m := &module{
		s:          session,
		appId:      appId,
		scopeGuild: scopeGuild,
		catalog:    catalog,
		history:    history,
		battleLim:  battleLim,
		log:        log,
	}

	created, err := session.ApplicationCommandBulkOverwrite(appId, scopeGuild, commandDefs())
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	for _, c := range created {
		log.Info("command active", zap.String("name", c.Name), zap.String("description", c.Description))
	}

	remove := session.AddHandler(m.onInteraction)

	return remove, nil
}

func (m *module) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	switch data.Name {
	case "card":
		m.handleCard(s, i, options(data))
	case "battle":
		m.handleBattle(s, i, options(data))
	case "dex":
		m.handleDex(s, i)
	}
}

func options(data discordgo.ApplicationCommandInteractionData) map[string]string {
	out := make(map[string]string, len(data.Options))
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			out[opt.Name] = opt.StringValue()
		}
	}
	return out
}

func (m *module) handleCard(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]string) {
	p, ok := m.catalog.Get(opts["name"])
	if !ok {
		m.respondEphemeral(s, i, fmt.Sprintf("Unknown pokemon '%s'", opts["name"]))
		return
	}
	m.respondEmbed(s, i, cardEmbed(p))
}

func (m *module) handleBattle(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]string) {
	r, refusal := m.startBattle(interactionUser(i), opts)
	if refusal != "" {
		m.respondEphemeral(s, i, refusal)
		return
	}

	if m.history != nil {
		if err := m.history.Add(context.TODO(), r); err != nil {
			m.log.Warn("failed to record battle", zap.Error(err))
		}
	}
	m.respondEmbed(s, i, battleEmbed(r))
}

// startBattle fights the two named pokemon, or returns the message to send
// instead. A user is only put on cooldown once both names resolve.
func (m *module) startBattle(user string, opts map[string]string) (battle.Result, string) {
	p1, ok := m.catalog.Get(opts["first"])
	if !ok {
		return battle.Result{}, fmt.Sprintf("Unknown pokemon '%s'", opts["first"])
	}
	p2, ok := m.catalog.Get(opts["second"])
	if !ok {
		return battle.Result{}, fmt.Sprintf("Unknown pokemon '%s'", opts["second"])
	}

	if ok, rem := m.battleLim.Try(user); !ok {
		return battle.Result{}, fmt.Sprintf("⏳ Your team is resting… try again in %s.", pretty(rem))
	}
	return battle.Fight(p1, p2), ""
}

func (m *module) handleDex(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var wins []store.WinCount
	if m.history != nil {
		w, err := m.history.Wins(context.TODO(), 10)
		if err != nil {
			m.log.Warn("failed to load win counts", zap.Error(err))
		}
		wins = w
	}
	m.respondEmbed(s, i, dexEmbed(m.catalog.Len(), wins))
}

func cardEmbed(p dex.Pokemon) *discordgo.MessageEmbed {
	tier := dex.TierFor(p)
	return &discordgo.MessageEmbed{
		Title:       p.Name,
		Description: fmt.Sprintf("Type: **%s**\nTier: **%s**", p.TypeString(), tier),
		Color:       dex.ColorForTier(tier),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "HP", Value: fmt.Sprint(p.HP), Inline: true},
			{Name: "Attack", Value: fmt.Sprint(p.Attack), Inline: true},
			{Name: "Defense", Value: fmt.Sprint(p.Defense), Inline: true},
			{Name: "Speed", Value: fmt.Sprint(p.Speed), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Base stat total: %d", p.Total())},
	}
}

func battleEmbed(r battle.Result) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("%s Attack: **%d**\n%s Attack: **%d**\n\n", r.First, r.FirstAttack, r.Second, r.SecondAttack)
	color := 0x95A5A6
	if name, ok := r.Winner(); ok {
		desc += fmt.Sprintf("Winner is **%s**!", name)
		color = 0xF1C40F
	} else {
		desc += "It's a Draw!"
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚔️ %s VS %s", r.First, r.Second),
		Description: desc,
		Color:       color,
	}
}

func dexEmbed(count int, wins []store.WinCount) *discordgo.MessageEmbed {
	desc := strings.Builder{}
	fmt.Fprintf(&desc, "%d pokemon in the catalog.\n", count)
	if len(wins) > 0 {
		desc.WriteString("\n**Most wins**\n")
		for idx, w := range wins {
			fmt.Fprintf(&desc, "**#%d** %s — %d\n", idx+1, w.Name, w.Wins)
		}
	}
	return &discordgo.MessageEmbed{
		Title:       "📖 Pokédex",
		Description: desc.String(),
		Color:       0x3498DB,
	}
}

func (m *module) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		m.logREST("respond failed", err)
	}
}

func (m *module) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		m.logREST("ephemeral respond failed", err)
	}
}

func interactionUser(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func pretty(d time.Duration) string {
	// mm:ss
	if d < 0 {
		d = 0
	}
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}

func (m *module) logREST(msg string, err error) {
	if rerr, ok := err.(*discordgo.RESTError); ok && rerr.Message != nil {
		m.log.Warn(msg, zap.Int("code", rerr.Message.Code), zap.String("msg", rerr.Message.Message))
	} else {
		m.log.Warn(msg, zap.Error(err))
	}
}
