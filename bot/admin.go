package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	catalogEngine "github.com/rs-sku/shop-tg-bot/engine/catalog"
	orderEngine "github.com/rs-sku/shop-tg-bot/engine/order"
)

// Administrative commands. Access is gated by the shared admin token: /admin
// prompts for it and a message equal to the token reveals the command list.
// Failures are reported with a deliberately generic "Incorrect input" so no
// internal cause leaks to the operator chat.

func (b *Bot) handleAdmin(chatID int64, _ string) {
	b.send(chatID, Reply{Text: TextInputToken})
}

func (b *Bot) handleAdminToken(chatID int64, _ string) {
	b.send(chatID, Reply{Text: fmt.Sprintf(
		"Available commands:\n%s\n%s\n%s\n%s",
		cmdShowOrders, cmdChangeStatus, cmdAddItem, cmdEditItem,
	)})
}

func (b *Bot) handleShowOrders(chatID int64, _ string) {
	orders, err := orderEngine.ListAll(b.db)
	if err != nil {
		b.reportError(chatID, err)
		return
	}
	if len(orders) == 0 {
		b.send(chatID, Reply{Text: TextNoOrders})
		return
	}
	var sb strings.Builder
	for _, order := range orders {
		fmt.Fprintf(&sb, "id: %d, number: %s, delivery: %s, status: %s, user_id: %d\n\n",
			order.ID, order.Number, order.DeliveryType, order.Status, order.UserID)
	}
	b.send(chatID, Reply{Text: sb.String()})
}

func (b *Bot) handleChangeStatus(chatID int64, text string) {
	args := commandArgs(text)
	if args == "" {
		b.send(chatID, Reply{Text: TextInputHint + FormatChangeStatus})
		return
	}
	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	orderID, err := strconv.Atoi(parts[0])
	if err != nil {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	if err := orderEngine.ChangeStatus(b.db, uint(orderID), parts[1]); err != nil {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	b.send(chatID, Reply{Text: TextUpdated})
}

func (b *Bot) handleAddItem(chatID int64, text string) {
	args := commandArgs(text)
	if args == "" {
		b.send(chatID, Reply{Text: TextInputHint + FormatAddItem})
		return
	}
	fields, err := parseItemFields(strings.Split(args, ","))
	if err != nil {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	input, err := fields.toInput()
	if err != nil {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	if err := catalogEngine.AddItem(b.db, input); err != nil {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	b.send(chatID, Reply{Text: TextUpdated})
}

func (b *Bot) handleEditItem(chatID int64, text string) {
	args := commandArgs(text)
	if args == "" {
		b.send(chatID, Reply{Text: TextInputHint + FormatEditItem + TextUpdateHint})
		return
	}
	parts := strings.Split(args, ",")
	if len(parts) < 2 {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	// the trailing bare token names the item being updated
	name := parts[len(parts)-1]
	if strings.Contains(name, ":") {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	fields, err := parseItemFields(parts[:len(parts)-1])
	if err != nil {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	if err := catalogEngine.UpdateItem(b.db, name, fields.toUpdate()); err != nil {
		b.send(chatID, Reply{Text: TextIncorrectInput})
		return
	}
	b.send(chatID, Reply{Text: TextUpdated})
}

// itemFields is the parsed form of the comma-separated key:value payload
// shared by the add-item and edit-item commands.
type itemFields struct {
	name         *string
	description  *string
	price        *decimal.Decimal
	categoryName *string
}

func parseItemFields(pairs []string) (itemFields, error) {
	var fields itemFields
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, ":")
		if !found {
			return itemFields{}, fmt.Errorf("malformed pair %q", pair)
		}
		switch key {
		case "name":
			fields.name = &value
		case "description":
			fields.description = &value
		case "price":
			price, err := decimal.NewFromString(value)
			if err != nil || price.IsNegative() {
				return itemFields{}, fmt.Errorf("bad price %q", value)
			}
			fields.price = &price
		case "category_name":
			fields.categoryName = &value
		default:
			return itemFields{}, fmt.Errorf("unknown key %q", key)
		}
	}
	return fields, nil
}

// toInput requires every field, per the add-item format.
func (f itemFields) toInput() (catalogEngine.ItemInput, error) {
	if f.name == nil || f.description == nil || f.price == nil || f.categoryName == nil {
		return catalogEngine.ItemInput{}, fmt.Errorf("missing required fields")
	}
	return catalogEngine.ItemInput{
		Name:         *f.name,
		Description:  *f.description,
		Price:        *f.price,
		CategoryName: *f.categoryName,
	}, nil
}

func (f itemFields) toUpdate() catalogEngine.ItemUpdate {
	return catalogEngine.ItemUpdate{
		Name:         f.name,
		Description:  f.description,
		Price:        f.price,
		CategoryName: f.categoryName,
	}
}
