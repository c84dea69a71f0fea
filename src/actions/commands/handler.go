package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stake-plus/stackbuddy/src/discord"
	"github.com/stake-plus/stackbuddy/src/events"
	"github.com/stake-plus/stackbuddy/src/render"
	"github.com/stake-plus/stackbuddy/src/stackup"
)

// DefaultUserID is the StackUp identity used when nothing better is known.
const DefaultUserID = 1

// Source is the StackUp data the commands read.
type Source interface {
	GetUser(ctx context.Context, userID int) (stackup.User, error)
	GetUserBalance(ctx context.Context, userID int) (stackup.Balance, error)
	GetUserProgress(ctx context.Context, userID int) (stackup.Progress, error)
	FeaturedCampaigns(ctx context.Context) ([]stackup.Campaign, error)
	FeaturedPathways(ctx context.Context) ([]stackup.Pathway, error)
	FeaturedHackathons(ctx context.Context) ([]stackup.Hackathon, error)
}

var _ Source = (*stackup.Client)(nil)

// IdentityFunc maps a Discord user id to a StackUp user id.
type IdentityFunc func(ctx context.Context, discordUserID string) (int, error)

// FixedIdentity resolves every user to id.
func FixedIdentity(id int) IdentityFunc {
	return func(context.Context, string) (int, error) { return id, nil }
}

// Dependencies are the collaborators a Handler needs. Only Session and
// Source are required.
type Dependencies struct {
	Session      discord.Session
	Source       Source
	Texts        render.Texts
	Identity     IdentityFunc
	Reporter     Reporter
	Events       events.Publisher
	Logger       *zap.Logger
	FailureReply string
	// LoadingInterval overrides the one second animation cadence.
	LoadingInterval time.Duration
}

// Handler runs one command invocation end to end.
type Handler struct {
	source       Source
	texts        render.Texts
	identity     IdentityFunc
	emitter      *discord.Emitter
	animator     *discord.Animator
	reporter     Reporter
	events       events.Publisher
	log          *zap.Logger
	failureReply string
}

// NewHandler wires a Handler, filling defaults for optional dependencies.
func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Session == nil {
		return nil, errors.New("commands: session is nil")
	}
	if deps.Source == nil {
		return nil, errors.New("commands: source is nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}
	if deps.Reporter == nil {
		deps.Reporter = NewLogReporter(deps.Logger, deps.Events)
	}
	if deps.Identity == nil {
		deps.Identity = FixedIdentity(DefaultUserID)
	}
	if deps.Texts == (render.Texts{}) {
		deps.Texts = render.DefaultTexts()
	}

	animator := discord.NewAnimator(deps.Session)
	if deps.LoadingInterval > 0 {
		animator = animator.WithInterval(deps.LoadingInterval)
	}

	return &Handler{
		source:       deps.Source,
		texts:        deps.Texts,
		identity:     deps.Identity,
		emitter:      discord.NewEmitter(deps.Session),
		animator:     animator,
		reporter:     deps.Reporter,
		events:       deps.Events,
		log:          deps.Logger,
		failureReply: deps.FailureReply,
	}, nil
}

type invocation struct {
	id  string
	cmd Command
	msg *discordgo.Message
}

func (inv invocation) authorID() string {
	if inv.msg.Author == nil {
		return ""
	}
	return inv.msg.Author.ID
}

// Handle dispatches m and, when it names a command, runs it to completion:
// loading animation and fetch run side by side and Handle returns once both
// are done. It reports whether m matched a command.
func (h *Handler) Handle(ctx context.Context, m *discordgo.Message) bool {
	if m == nil {
		return false
	}
	cmd, ok := Dispatch(m.Content)
	if !ok {
		return false
	}

	inv := invocation{id: uuid.NewString(), cmd: cmd, msg: m}
	h.log.Debug("commands: dispatch",
		zap.String("invocation", inv.id),
		zap.String("token", cmd.Token),
		zap.String("channel", m.ChannelID),
	)
	h.publish(ctx, inv, "dispatch", events.StatusDispatched)

	var animating <-chan struct{}
	if cmd.Animate {
		animating = h.startLoading(ctx, inv)
	}

	answer, err := h.answer(ctx, inv)
	if err != nil {
		stage := StageFetch
		if errors.Is(err, errIdentity) {
			stage = StageIdentity
		}
		h.fail(ctx, inv, stage, err)
		h.replyFailure(ctx, inv)
	} else {
		h.deliver(ctx, inv, answer)
	}

	if animating != nil {
		<-animating
	}
	return true
}

// startLoading sends the loading message and plays it in the background.
// The returned channel closes when the animation has finished.
func (h *Handler) startLoading(ctx context.Context, inv invocation) <-chan struct{} {
	done := make(chan struct{})
	loading, err := h.animator.Begin(inv.msg.ChannelID)
	if err != nil {
		h.fail(ctx, inv, StageLoading, err)
		close(done)
		return done
	}
	go func() {
		defer close(done)
		loading.Play(func(err error) { h.fail(ctx, inv, StageAnimate, err) })
	}()
	return done
}

var errIdentity = errors.New("identity lookup failed")

func (h *Handler) userID(ctx context.Context, inv invocation) (int, error) {
	id, err := h.identity(ctx, inv.authorID())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errIdentity, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: invalid user id %d", errIdentity, id)
	}
	return id, nil
}

func (h *Handler) answer(ctx context.Context, inv invocation) (discord.Answer, error) {
	a := discord.Answer{Color: inv.cmd.Color}

	var userID int
	if inv.cmd.UserScoped() {
		id, err := h.userID(ctx, inv)
		if err != nil {
			return a, err
		}
		userID = id
	}

	switch inv.cmd.Kind {
	case KindHelp:
		a.Body = h.texts.Help
	case KindInfo:
		a.Body = h.texts.Info
	case KindCalendar:
		a.Body = h.texts.Calendar
		a.ImageURL = h.texts.CalendarImage
	case KindUsername:
		u, err := h.source.GetUser(ctx, userID)
		if err != nil {
			return a, err
		}
		a.Body = render.User(u)
	case KindBalance:
		b, err := h.source.GetUserBalance(ctx, userID)
		if err != nil {
			return a, err
		}
		a.Body = render.Balance(b)
	case KindProfile:
		p, err := h.source.GetUserProgress(ctx, userID)
		if err != nil {
			return a, err
		}
		a.Body = render.Progress(p)
	case KindCampaigns:
		items, err := h.source.FeaturedCampaigns(ctx)
		if err != nil {
			return a, err
		}
		a.Body = render.Campaigns(items)
	case KindPathways:
		items, err := h.source.FeaturedPathways(ctx)
		if err != nil {
			return a, err
		}
		a.Body = render.Pathways(items)
	case KindHackathons:
		items, err := h.source.FeaturedHackathons(ctx)
		if err != nil {
			return a, err
		}
		a.Body = render.Hackathons(items)
	default:
		return a, fmt.Errorf("commands: no action for %s", inv.cmd.Token)
	}
	return a, nil
}

func (h *Handler) deliver(ctx context.Context, inv invocation, a discord.Answer) {
	msg, err := h.emitter.Emit(inv.msg, inv.cmd.Token, a)
	if err != nil {
		h.fail(ctx, inv, StageSend, err)
		return
	}
	if msg == nil {
		h.log.Debug("commands: answer suppressed by content guard", zap.String("invocation", inv.id))
		return
	}
	h.publish(ctx, inv, StageSend, events.StatusAnswered)
}

func (h *Handler) replyFailure(ctx context.Context, inv invocation) {
	if h.failureReply == "" {
		return
	}
	_, err := h.emitter.Emit(inv.msg, inv.cmd.Token, discord.Answer{Body: h.failureReply, Color: discord.ColorDarkRed})
	if err != nil {
		h.fail(ctx, inv, StageSend, err)
	}
}

func (h *Handler) fail(ctx context.Context, inv invocation, stage string, err error) {
	h.reporter.ReportFailure(ctx, Failure{
		InvocationID: inv.id,
		Token:        inv.cmd.Token,
		ChannelID:    inv.msg.ChannelID,
		AuthorID:     inv.authorID(),
		Stage:        stage,
		Err:          err,
	})
}

func (h *Handler) publish(ctx context.Context, inv invocation, stage, status string) {
	err := h.events.Publish(ctx, events.Event{
		ID:      inv.id,
		Token:   inv.cmd.Token,
		Channel: inv.msg.ChannelID,
		Author:  inv.authorID(),
		Stage:   stage,
		Status:  status,
		Time:    time.Now(),
	})
	if err != nil {
		h.log.Warn("commands: publish event", zap.String("invocation", inv.id), zap.Error(err))
	}
}
