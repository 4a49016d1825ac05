package schema

import "strings"

// PublisherInfo holds the presentation attributes of a publisher.
type PublisherInfo struct {
	Color string `json:"color"`
	Logo  string `json:"logo"`
}

// DefaultPublisher is used for publishers missing from the registry.
var DefaultPublisher = PublisherInfo{
	Color: "#94a3b8",
	Logo:  "/logos/generics.svg",
}

// PublisherRegistry maps known publisher names to their color and logo.
var PublisherRegistry = map[string]PublisherInfo{
	"OpenAI":    {Color: "#1f1f1f", Logo: "/logos/openai.svg"},
	"Google":    {Color: "#34a853", Logo: "/logos/google.svg"},
	"Anthropic": {Color: "#cc785c", Logo: "/logos/anthropic.svg"},
	"Meta":      {Color: "#0668E1", Logo: "/logos/meta.svg"},
	"Mistral":   {Color: "#FD7E14", Logo: "/logos/mistral.svg"},
	"DeepSeek":  {Color: "#2243e6", Logo: "/logos/deepseek.svg"},
	"Kimi":      {Color: "#047afe", Logo: "/logos/kimi.svg"},
	"Grok":      {Color: "#736cd3", Logo: "/logos/grok.svg"},
	"MiniMax":   {Color: "#eb3568", Logo: "/logos/minimax.svg"},
	"Qwen":      {Color: "#623ce5", Logo: "/logos/qwen.svg"},
	"Nvidia":    {Color: "#86b737", Logo: "/logos/nvidia.svg"},
	"Zai":       {Color: "#1c7ff8", Logo: "/logos/zai.svg"},
	"Microsoft": {Color: "#74b71b", Logo: "/logos/microsoft.svg"},
	"AWS":       {Color: "#ff9900", Logo: "/logos/aws.svg"},
	"ByteDance": {Color: "#74e1de", Logo: "/logos/bytedance.svg"},
}

// LookupPublisher returns the registry entry for name, falling back to a
// case-insensitive match and then to DefaultPublisher.
func LookupPublisher(name string) PublisherInfo {
	if info, ok := PublisherRegistry[name]; ok {
		return info
	}
	for k, info := range PublisherRegistry {
		if strings.EqualFold(k, name) {
			return info
		}
	}
	return DefaultPublisher
}
