package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarv3 "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// GoogleConfig holds the OAuth client settings for the Google provider.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Timezone     string // IANA name, e.g. "Australia/Melbourne"

	// RequestTimeout bounds each Calendar API call. Zero means no limit.
	RequestTimeout time.Duration
}

// GoogleProvider implements Provider against the Google Calendar API.
type GoogleProvider struct {
	oauth   *oauth2.Config
	store   *TokenStore
	account string
	loc     *time.Location
	timeout time.Duration
	logger  *logging.Logger
}

// NewGoogleProvider creates a Google Calendar provider backed by store.
func NewGoogleProvider(cfg GoogleConfig, store *TokenStore, logger *logging.Logger) *GoogleProvider {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", "timezone", cfg.Timezone)
		loc = time.UTC
	}
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{calendarv3.CalendarScope},
			Endpoint:     google.Endpoint,
		},
		store:   store,
		account: DefaultAccountID,
		loc:     loc,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}
}

// AuthURL builds the consent URL. Offline access and forced consent
// ensure Google issues a refresh token on every connect.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode trades the authorization code for tokens and persists
// them. The persist side effect is deliberate: authenticating and
// storing are one operation from the caller's point of view.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*Tokens, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthExchange, err)
	}

	record := &Tokens{
		AccountID:    p.account,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
	if err := p.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("calendar: save tokens: %w", err)
	}

	p.logger.Info("google calendar connected", "account", p.account, "expiry", tok.Expiry)
	return record, nil
}

// service builds an authenticated Calendar API client from the stored
// credentials. The token source refreshes an expired access token, and
// the refreshed token is written back so subsequent calls skip the
// refresh round trip.
func (p *GoogleProvider) service(ctx context.Context) (*calendarv3.Service, error) {
	record, ok := p.store.Get(ctx, p.account)
	if !ok || record.RefreshToken == "" {
		return nil, ErrNotConnected
	}

	source := p.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
		Expiry:       record.Expiry,
	})
	tok, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("calendar: refresh access token: %w", err)
	}
	p.persistRefreshed(ctx, record, tok)

	client := oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, source))
	client.Timeout = p.timeout
	svc, err := calendarv3.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("calendar: create service: %w", err)
	}
	return svc, nil
}

// persistRefreshed overwrites the stored record when the token source
// issued a new access token. Google normally omits the refresh token on
// refresh responses; the stored one is kept unless a replacement came
// back.
func (p *GoogleProvider) persistRefreshed(ctx context.Context, record *Tokens, tok *oauth2.Token) {
	if tok.AccessToken == record.AccessToken {
		return
	}

	record.AccessToken = tok.AccessToken
	record.Expiry = tok.Expiry
	if tok.RefreshToken != "" {
		record.RefreshToken = tok.RefreshToken
	}
	if err := p.store.Save(ctx, record); err != nil {
		p.logger.Error("saving refreshed token failed", "account", p.account, "error", err)
		return
	}
	p.logger.Info("access token refreshed", "account", p.account, "expiry", tok.Expiry)
}

// ListCalendars returns the calendars on the connected account.
func (p *GoogleProvider) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	svc, err := p.service(ctx)
	if err != nil {
		return nil, err
	}

	list, err := svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: list calendars: %w", err)
	}

	out := make([]CalendarInfo, 0, len(list.Items))
	for _, item := range list.Items {
		out = append(out, CalendarInfo{
			ID:      item.Id,
			Summary: item.Summary,
			Primary: item.Primary,
		})
	}
	return out, nil
}

// ListEvents returns events overlapping [start, end), recurring events
// expanded to instances, ordered by start time.
func (p *GoogleProvider) ListEvents(ctx context.Context, calendarID string, start, end time.Time) ([]Event, error) {
	svc, err := p.service(ctx)
	if err != nil {
		return nil, err
	}
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	resp, err := svc.Events.List(calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: list events: %w", err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev, err := p.parseEvent(item)
		if err != nil {
			p.logger.Warn("skipping unparseable event", "event_id", item.Id, "error", err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (p *GoogleProvider) parseEvent(item *calendarv3.Event) (Event, error) {
	start, err := p.parseEventTime(item.Start)
	if err != nil {
		return Event{}, err
	}
	end, err := p.parseEventTime(item.End)
	if err != nil {
		return Event{}, err
	}

	ev := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       start,
		End:         end,
		Transparent: item.Transparency == "transparent",
	}
	for _, a := range item.Attendees {
		ev.Attendees = append(ev.Attendees, a.Email)
	}
	return ev, nil
}

// parseEventTime handles both timed events (DateTime) and all-day
// events (Date only).
func (p *GoogleProvider) parseEventTime(t *calendarv3.EventDateTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, fmt.Errorf("missing event time")
	}
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	return time.ParseInLocation(dateFormat, t.Date, p.loc)
}

// CreateEvent inserts an event and sends attendee notifications.
func (p *GoogleProvider) CreateEvent(ctx context.Context, calendarID string, req EventRequest) (*Event, error) {
	svc, err := p.service(ctx)
	if err != nil {
		return nil, err
	}
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	body := &calendarv3.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       &calendarv3.EventDateTime{DateTime: req.Start.Format(time.RFC3339)},
		End:         &calendarv3.EventDateTime{DateTime: req.End.Format(time.RFC3339)},
	}
	for _, email := range req.Attendees {
		body.Attendees = append(body.Attendees, &calendarv3.EventAttendee{Email: email})
	}

	created, err := svc.Events.Insert(calendarID, body).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: create event: %w", err)
	}
	ev, err := p.parseEvent(created)
	if err != nil {
		return nil, fmt.Errorf("calendar: parse created event: %w", err)
	}
	return &ev, nil
}

// AvailableSlots returns the free subset of the business grid for date.
func (p *GoogleProvider) AvailableSlots(ctx context.Context, calendarID string, date string) ([]string, error) {
	day, err := time.ParseInLocation(dateFormat, date, p.loc)
	if err != nil {
		return nil, fmt.Errorf("calendar: invalid date %q: %w", date, err)
	}

	events, err := p.ListEvents(ctx, calendarID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return freeSlots(date, events, p.loc)
}

// Connected reports whether stored credentials exist with a refresh token.
func (p *GoogleProvider) Connected(ctx context.Context) bool {
	record, ok := p.store.Get(ctx, p.account)
	return ok && record.RefreshToken != ""
}

// Disconnect clears the stored credentials.
func (p *GoogleProvider) Disconnect(ctx context.Context) error {
	if err := p.store.Delete(ctx, p.account); err != nil {
		return fmt.Errorf("calendar: delete tokens: %w", err)
	}
	p.logger.Info("google calendar disconnected", "account", p.account)
	return nil
}
