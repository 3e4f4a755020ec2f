package component

type HomeToggleTag struct{}

var HomeToggleTagComponent = NewComponent[HomeToggleTag]()

type BackButtonTag struct{}

var BackButtonTagComponent = NewComponent[BackButtonTag]()

type SendButtonTag struct{}

var SendButtonTagComponent = NewComponent[SendButtonTag]()

type RoomTag struct{}

var RoomTagComponent = NewComponent[RoomTag]()
