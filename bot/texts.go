package bot

// User-facing texts and button payloads.
const (
	TextGreetings       = "Welcome to our store!"
	TextCategories      = "Categories"
	TextCart            = "Cart"
	TextAddToCart       = "Add to cart"
	TextItemAdded       = "Item added to cart"
	TextOpenCart        = "Show cart contents"
	TextCheckout        = "Checkout"
	TextChooseAction    = "Choose an action:"
	TextDeleteItem      = "Remove from cart"
	TextChangeQuantity  = "Change quantity"
	TextRequestQuantity = "Enter the new item quantity as a single number"
	TextQuantityUpdated = "Item quantity updated"
	TextItemRemoved     = "Item removed from cart"
	TextContactsRequest = "Enter comma-separated, in this order: full name, phone starting with +, address"
	TextWrongContacts   = "Wrong contacts format, please start checkout again"
	TextChooseReceiving = "Choose how to receive your order"
	TextApprove         = "Yes"
	TextNotApprove      = "No"
	TextRecreateOrder   = "Please go through checkout again"
	TextOrderNumber     = "Your order number: "
	TextRegisterFirst   = "Send /start to register"
	TextInputToken      = "Enter the admin token"
	TextNoOrders        = "No orders found"
	TextIncorrectInput  = "Incorrect input"
	TextUpdated         = "Updated successfully"
	TextInputHint       = "After the command, enter text in strictly the following format:\n"
	TextUpdateHint      = "\nAll fields except the last one are optional"

	FormatAddItem = "name:<item name>,description:<item description>," +
		"price:<item price>,category_name:<category name>"
	FormatEditItem = "name:<new item name>,description:<new item description>," +
		"price:<new item price>,category_name:<category name>,<current item name>"
	FormatChangeStatus = "<order id>,<new status>"
)

// Callback payload prefixes.
const (
	cbCategory = "category:"
	cbAddItem  = "add:"
	cbOpenCart = "open_cart"
	cbCheckout = "checkout"
	cbDelete   = "delete:"
	cbQuantity = "quantity:"
	cbDelivery = "delivery:"
)

// Commands.
const (
	cmdStart        = "/start"
	cmdHelp         = "/help"
	cmdAdmin        = "/admin"
	cmdShowOrders   = "/show_orders"
	cmdChangeStatus = "/change_status"
	cmdAddItem      = "/add_good"
	cmdEditItem     = "/edit_good"
)
