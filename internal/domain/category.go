package domain

type Category struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}
