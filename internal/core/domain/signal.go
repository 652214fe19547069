package domain

// Collection names the two synchronized collections.
type Collection string

const (
	CollectionProducts Collection = "productos"
	CollectionMessages Collection = "mensajes"
)

// MutationKind identifies a collection-changing action. A signal carries no
// payload and no authority: it only tells the hub which collection to
// re-fetch and rebroadcast.
type MutationKind string

const (
	ProductCreated MutationKind = "product_created"
	ProductUpdated MutationKind = "product_updated"
	ProductDeleted MutationKind = "product_deleted"
	MessageCreated MutationKind = "message_created"
)

// Collection maps a mutation kind to the collection it touches. The empty
// string marks an unknown kind.
func (k MutationKind) Collection() Collection {
	switch k {
	case ProductCreated, ProductUpdated, ProductDeleted:
		return CollectionProducts
	case MessageCreated:
		return CollectionMessages
	}
	return ""
}
