package serializer

import "github.com/bytedance/sonic"

// JSONSerializer uses bytedance/sonic with encoding/json compatible behaviour,
// so json.Marshaler hooks are honoured.
type JSONSerializer struct{}

var _ Serializer = JSONSerializer{}

func (JSONSerializer) Name() string { return "json" }

func (JSONSerializer) Marshal(v any) ([]byte, error) {
	return sonic.ConfigStd.Marshal(v)
}

func (JSONSerializer) Unmarshal(data []byte, v any) error {
	return sonic.ConfigStd.Unmarshal(data, v)
}
