package events

type ProductTracer struct{}

type productReason string

// Reasons a product dialog closed without saving.
const (
	ProductReasonEscape  productReason = "escape"
	ProductReasonInvalid productReason = "invalid"
	ProductReasonMissing productReason = "missing"
)

var Product = ProductTracer{}

func (ProductTracer) AddPrompt(existing int) { emit("product.add.prompt", "existing", existing) }

func (ProductTracer) Add(id int64, title string) { emit("product.add", "id", id, "title", title) }

func (ProductTracer) CancelAdd(reason productReason) {
	emit("product.add.cancel", "reason", string(reason))
}

func (ProductTracer) EditPrompt(id int64) { emit("product.edit.prompt", "id", id) }

func (ProductTracer) Update(id int64, title string) { emit("product.update", "id", id, "title", title) }

func (ProductTracer) CancelEdit(id int64, reason productReason) {
	emit("product.edit.cancel", "id", id, "reason", string(reason))
}

// Invalid records the per-field messages of a rejected form submission.
func (ProductTracer) Invalid(fields map[string]string) { emit("product.invalid", "fields", fields) }

func (ProductTracer) DeletePrompt(id int64, title string) {
	emit("product.delete.prompt", "id", id, "title", title)
}

func (ProductTracer) Delete(id int64, title string) { emit("product.delete", "id", id, "title", title) }

func (ProductTracer) CancelDelete(id int64) { emit("product.delete.cancel", "id", id) }
