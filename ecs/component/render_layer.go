package component

// RenderLayer is used to sort draw order deterministically. Within a layer
// entities are drawn back to front by view depth.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
