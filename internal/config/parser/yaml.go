package parser

import (
	"os"

	"github.com/drone/envsubst/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
	"github.com/dadrus/kvasir/internal/x/stringx"
)

func koanfFromYaml(configFile string) (*koanf.Koanf, error) {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errorchain.NewWithMessagef(kvasir.ErrConfiguration,
			"failed to read yaml config from %s", configFile).CausedBy(err)
	}

	content, err := envsubst.EvalEnv(stringx.ToString(raw))
	if err != nil {
		return nil, errorchain.NewWithMessagef(kvasir.ErrConfiguration,
			"failed to evaluate env variables in %s", configFile).CausedBy(err)
	}

	parser := koanf.New(".")

	if err := parser.Load(rawbytes.Provider(stringx.ToBytes(content)), yaml.Parser()); err != nil {
		return nil, errorchain.NewWithMessagef(kvasir.ErrConfiguration,
			"failed to load yaml config from %s", configFile).CausedBy(err)
	}

	return parser, nil
}
