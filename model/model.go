package model

var Models = []interface{}{
	&Preference{},
}
