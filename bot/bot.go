package bot

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	cartEngine "github.com/rs-sku/shop-tg-bot/engine/cart"
	catalogEngine "github.com/rs-sku/shop-tg-bot/engine/catalog"
	orderEngine "github.com/rs-sku/shop-tg-bot/engine/order"
	userEngine "github.com/rs-sku/shop-tg-bot/engine/user"
	"github.com/rs-sku/shop-tg-bot/models"
)

var digitsRe = regexp.MustCompile(`^\d+$`)

// Bot drives the per-chat conversation: it resolves the chat session state,
// dispatches the input through an explicit (state, pattern) table and calls
// into the engines. Unmatched (state, input) combinations are ignored.
type Bot struct {
	db         *gorm.DB
	sender     Sender
	adminToken string
	sessions   *sessionStore

	messageRules  map[State][]messageRule
	callbackRules []callbackRule
}

type messageRule struct {
	match  func(text string) bool
	handle func(chatID int64, text string)
}

type callbackRule struct {
	prefix string
	handle func(chatID int64, payload string)
}

func New(db *gorm.DB, sender Sender, adminToken string) *Bot {
	b := &Bot{
		db:         db,
		sender:     sender,
		adminToken: adminToken,
		sessions:   newSessionStore(),
	}
	b.initDispatch()
	return b
}

func (b *Bot) initDispatch() {
	b.messageRules = map[State][]messageRule{
		StateAwaitingQuantity: {
			{match: digitsRe.MatchString, handle: b.applyQuantity},
		},
		StateAwaitingContacts: {
			{match: matchAny, handle: b.captureContacts},
		},
		StateAwaitingApproval: {
			{match: oneOf(TextApprove, TextNotApprove), handle: b.finishApproval},
		},
		StateIdle: {
			{match: isCommand(cmdStart), handle: b.handleStart},
			{match: isCommand(cmdHelp), handle: b.handleHelp},
			{match: isCommand(cmdAdmin), handle: b.handleAdmin},
			{match: isCommand(cmdShowOrders), handle: b.handleShowOrders},
			{match: isCommand(cmdChangeStatus), handle: b.handleChangeStatus},
			{match: isCommand(cmdAddItem), handle: b.handleAddItem},
			{match: isCommand(cmdEditItem), handle: b.handleEditItem},
			{match: equals(TextCategories), handle: b.handleCategories},
			{match: equals(TextCart), handle: b.handleCart},
			{match: b.matchAdminToken, handle: b.handleAdminToken},
		},
	}
	b.callbackRules = []callbackRule{
		{prefix: cbCategory, handle: b.handleCategoryItems},
		{prefix: cbAddItem, handle: b.handleAddToCart},
		{prefix: cbOpenCart, handle: b.handleCartItems},
		{prefix: cbCheckout, handle: b.handleCheckout},
		{prefix: cbDelete, handle: b.handleDeleteFromCart},
		{prefix: cbQuantity, handle: b.handleRequestQuantity},
		{prefix: cbDelivery, handle: b.handleDeliveryChoice},
	}
}

// HandleMessage processes one inbound free-text message.
func (b *Bot) HandleMessage(chatID int64, text string) {
	state := b.sessions.get(chatID).State
	for _, rule := range b.messageRules[state] {
		if rule.match(text) {
			rule.handle(chatID, text)
			return
		}
	}
	// no rule matched: input is ignored, state is kept
}

// HandleCallback processes one inbound button press.
func (b *Bot) HandleCallback(chatID int64, data string) {
	for _, rule := range b.callbackRules {
		if strings.HasPrefix(data, rule.prefix) {
			rule.handle(chatID, strings.TrimPrefix(data, rule.prefix))
			return
		}
	}
}

// ---- matchers ----

func matchAny(string) bool { return true }

func equals(want string) func(string) bool {
	return func(text string) bool { return text == want }
}

func oneOf(options ...string) func(string) bool {
	return func(text string) bool {
		for _, o := range options {
			if text == o {
				return true
			}
		}
		return false
	}
}

func isCommand(cmd string) func(string) bool {
	return func(text string) bool {
		return text == cmd || strings.HasPrefix(text, cmd+" ")
	}
}

func (b *Bot) matchAdminToken(text string) bool {
	return b.adminToken != "" && text == b.adminToken
}

// commandArgs returns the text after the command word, if any.
func commandArgs(text string) string {
	_, args, found := strings.Cut(text, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(args)
}

// ---- menu handlers ----

func (b *Bot) handleStart(chatID int64, _ string) {
	if _, err := userEngine.GetByChatID(b.db, chatID); err != nil {
		if !errors.Is(err, models.ErrUnknownUser) {
			b.reportError(chatID, err)
			return
		}
		if err := userEngine.Register(b.db, chatID); err != nil {
			b.reportError(chatID, err)
			return
		}
		log.Printf("user with chat_id=%d created", chatID)
	}
	b.send(chatID, Reply{
		Text: TextGreetings,
		Menu: [][]string{{TextCategories, TextCart}},
	})
}

func (b *Bot) handleHelp(chatID int64, _ string) {
	b.send(chatID, Reply{Text: fmt.Sprintf("Available commands:\n%s\n%s\n%s", cmdStart, cmdHelp, cmdAdmin)})
}

func (b *Bot) handleCategories(chatID int64, _ string) {
	categories, err := catalogEngine.CategoriesWithItems(b.db)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	var rows [][]Button
	for _, category := range categories {
		rows = append(rows, []Button{{
			Text:         category.Name,
			CallbackData: fmt.Sprintf("%s%d", cbCategory, category.ID),
		}})
	}
	b.send(chatID, Reply{Text: TextCategories + ":", Buttons: rows})
}

func (b *Bot) handleCart(chatID int64, _ string) {
	b.send(chatID, Reply{
		Text: TextChooseAction,
		Buttons: [][]Button{
			{{Text: TextOpenCart, CallbackData: cbOpenCart}},
			{{Text: TextCheckout, CallbackData: cbCheckout}},
		},
	})
}

// ---- catalog browsing ----

func (b *Bot) handleCategoryItems(chatID int64, payload string) {
	categoryID, err := strconv.Atoi(payload)
	if err != nil {
		return
	}
	categories, err := catalogEngine.CategoriesWithItems(b.db)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	for _, category := range categories {
		if category.ID != uint(categoryID) {
			continue
		}
		for _, item := range category.Items {
			b.send(chatID, Reply{
				Text:      fmt.Sprintf("Name: %s\nDescription: %s\nPrice: %s", item.Name, item.Description, item.Price),
				PhotoPath: item.PhotoPath,
				Buttons: [][]Button{{{
					Text:         TextAddToCart,
					CallbackData: fmt.Sprintf("%s%d", cbAddItem, item.ID),
				}}},
			})
		}
	}
}

// ---- cart flows ----

func (b *Bot) handleAddToCart(chatID int64, payload string) {
	itemID, err := strconv.Atoi(payload)
	if err != nil {
		return
	}
	cartID, err := userEngine.CartIDByChatID(b.db, chatID)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	if err := cartEngine.AddOne(b.db, cartID, uint(itemID)); err != nil {
		b.reportError(chatID, err)
		return
	}
	b.send(chatID, Reply{Text: TextItemAdded})
}

func (b *Bot) handleCartItems(chatID int64, _ string) {
	cartID, err := userEngine.CartIDByChatID(b.db, chatID)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	lines, err := cartEngine.ListWithQuantities(b.db, cartID)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	for _, line := range lines {
		b.send(chatID, Reply{
			Text: fmt.Sprintf("Name: %s\nQuantity: %d", line.Item.Name, line.Quantity),
			Buttons: [][]Button{
				{{Text: TextDeleteItem, CallbackData: fmt.Sprintf("%s%d", cbDelete, line.Item.ID)}},
				{{Text: TextChangeQuantity, CallbackData: fmt.Sprintf("%s%d", cbQuantity, line.Item.ID)}},
			},
		})
	}
	total, err := cartEngine.TotalCost(b.db, cartID)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	b.send(chatID, Reply{Text: "Cart total: " + total.String()})
}

func (b *Bot) handleDeleteFromCart(chatID int64, payload string) {
	itemID, err := strconv.Atoi(payload)
	if err != nil {
		return
	}
	cartID, err := userEngine.CartIDByChatID(b.db, chatID)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	if err := cartEngine.Remove(b.db, cartID, uint(itemID)); err != nil {
		b.reportError(chatID, err)
		return
	}
	b.send(chatID, Reply{Text: TextItemRemoved})
}

func (b *Bot) handleRequestQuantity(chatID int64, payload string) {
	itemID, err := strconv.Atoi(payload)
	if err != nil {
		return
	}
	b.sessions.set(chatID, Session{State: StateAwaitingQuantity, ItemID: uint(itemID)})
	b.send(chatID, Reply{Text: TextRequestQuantity})
}

func (b *Bot) applyQuantity(chatID int64, text string) {
	sess := b.sessions.get(chatID)
	newQuantity, err := strconv.Atoi(text)
	if err != nil {
		return
	}
	cartID, err := userEngine.CartIDByChatID(b.db, chatID)
	if err != nil {
		b.sessions.clear(chatID)
		b.reportError(chatID, err)
		return
	}
	if err := cartEngine.SetQuantity(b.db, cartID, sess.ItemID, newQuantity); err != nil {
		b.sessions.clear(chatID)
		b.reportError(chatID, err)
		return
	}
	b.sessions.clear(chatID)
	b.send(chatID, Reply{Text: TextQuantityUpdated})
}

// ---- checkout ----

func (b *Bot) handleCheckout(chatID int64, _ string) {
	b.sessions.set(chatID, Session{State: StateAwaitingContacts})
	b.send(chatID, Reply{Text: TextContactsRequest})
}

func (b *Bot) captureContacts(chatID int64, text string) {
	// The contacts step is terminal either way: the pending slot is cleared
	// both on success and on a format error.
	b.sessions.clear(chatID)

	fields := strings.Split(text, ",")
	if len(fields) != 3 {
		b.send(chatID, Reply{Text: TextWrongContacts})
		return
	}
	user, err := userEngine.GetByChatID(b.db, chatID)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	if err := userEngine.SaveContacts(b.db, user.ID, fields[0], fields[1], fields[2]); err != nil {
		b.reportError(chatID, err)
		return
	}
	b.send(chatID, Reply{
		Text: TextChooseReceiving,
		Buttons: [][]Button{
			{{Text: models.DeliveryPickup.Label(), CallbackData: cbDelivery + string(models.DeliveryPickup)}},
			{{Text: models.DeliveryToHome.Label(), CallbackData: cbDelivery + string(models.DeliveryToHome)}},
		},
	})
}

func (b *Bot) handleDeliveryChoice(chatID int64, payload string) {
	deliveryType := models.DeliveryType(payload)
	if deliveryType != models.DeliveryPickup && deliveryType != models.DeliveryToHome {
		return
	}
	user, err := userEngine.GetByChatID(b.db, chatID)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	b.sessions.set(chatID, Session{State: StateAwaitingApproval, DeliveryType: deliveryType})
	b.send(chatID, Reply{Text: fmt.Sprintf(
		"Your contact details:\nFull name: %s\nPhone: %s\nAddress: %s\n%s\n%s/%s?",
		user.FullName, user.Phone, user.Address,
		deliveryType.Label(), TextApprove, TextNotApprove,
	)})
}

func (b *Bot) finishApproval(chatID int64, text string) {
	sess := b.sessions.get(chatID)
	b.sessions.clear(chatID)

	if text == TextNotApprove {
		b.send(chatID, Reply{Text: TextRecreateOrder})
		return
	}
	user, err := userEngine.GetByChatID(b.db, chatID)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	order, err := orderEngine.Create(b.db, user.ID, sess.DeliveryType)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	b.send(chatID, Reply{Text: TextOrderNumber + order.Number.String()})
}

// ---- plumbing ----

func (b *Bot) send(chatID int64, reply Reply) {
	if err := b.sender.Send(chatID, reply); err != nil {
		log.Printf("send to chat %d failed: %v", chatID, err)
	}
}

// reportError translates engine errors at the user-facing boundary. An
// unknown user is told to register; anything else is a store failure, which
// produces no success text for the turn.
func (b *Bot) reportError(chatID int64, err error) {
	if errors.Is(err, models.ErrUnknownUser) {
		b.send(chatID, Reply{Text: TextRegisterFirst})
		return
	}
	log.Printf("chat %d: %v", chatID, err)
}
