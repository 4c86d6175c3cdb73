package pinata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/x-xyz/metagen/base/ctx"
)

const (
	DefaultEndpoint = "https://api.pinata.cloud"
	pinPath         = "/pinning/pinFileToIPFS"
	pinJsonPath     = "/pinning/pinJSONToIPFS"
)

type Cfg struct {
	ApiKey     string
	ApiSecret  string
	Endpoint   string
	HttpClient *http.Client
}

type pinataImpl struct {
	apiKey     string
	apiSecret  string
	endpoint   string
	httpClient *http.Client
}

func New(cfg *Cfg) Service {
	endpoint := cfg.Endpoint
	if len(endpoint) == 0 {
		endpoint = DefaultEndpoint
	}
	client := cfg.HttpClient
	if client == nil {
		client = http.DefaultClient
	}
	return &pinataImpl{
		apiKey:     cfg.ApiKey,
		apiSecret:  cfg.ApiSecret,
		endpoint:   endpoint,
		httpClient: client,
	}
}

func (im *pinataImpl) Pin(c ctx.Ctx, file io.Reader, filename string, opts ...PinOption) (string, error) {
	pr, err := newPinRequest(opts)
	if err != nil {
		c.WithField("err", err).Error("newPinRequest failed")
		return "", err
	}

	var b bytes.Buffer

	w := multipart.NewWriter(&b)
	if fw, err := w.CreateFormFile("file", filename); err != nil {
		c.WithField("err", err).Error("w.CreateFormFile failed")
		return "", err
	} else if _, err := io.Copy(fw, file); err != nil {
		c.WithField("err", err).Error("io.Copy failed")
		return "", err
	}

	if pr.Metadata != nil {
		if b, err := marshal(pr.Metadata); err != nil {
			c.WithField("err", err).Error("marshal failed")
			return "", err
		} else if err := w.WriteField("pinataMetadata", string(b)); err != nil {
			c.WithField("err", err).Error("w.WriteField failed")
			return "", err
		}
	}

	if pr.Options != nil {
		if b, err := marshal(pr.Options); err != nil {
			c.WithField("err", err).Error("marshal failed")
			return "", err
		} else if err := w.WriteField("pinataOptions", string(b)); err != nil {
			c.WithField("err", err).Error("w.WriteField failed")
			return "", err
		}
	}

	if err := w.Close(); err != nil {
		c.WithField("err", err).Error("w.Close failed")
		return "", err
	}

	return im.send(c, pinPath, w.FormDataContentType(), &b)
}

func (im *pinataImpl) PinJson(c ctx.Ctx, value interface{}, opts ...PinOption) (string, error) {
	pr, err := newPinRequest(opts)
	if err != nil {
		c.WithField("err", err).Error("newPinRequest failed")
		return "", err
	}
	pr.Content = value

	body, err := marshal(pr)
	if err != nil {
		c.WithField("err", err).Error("marshal failed")
		return "", err
	}

	return im.send(c, pinJsonPath, "application/json", bytes.NewReader(body))
}

// marshal keeps html characters of pinned documents as they are.
func marshal(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (im *pinataImpl) send(c ctx.Ctx, path string, contentType string, body io.Reader) (string, error) {
	url := fmt.Sprintf("%s%s", im.endpoint, path)

	req, err := http.NewRequestWithContext(c, http.MethodPost, url, body)
	if err != nil {
		c.WithField("err", err).Error("http.NewRequest failed")
		return "", err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("pinata_api_key", im.apiKey)
	req.Header.Set("pinata_secret_api_key", im.apiSecret)

	resp, err := im.httpClient.Do(req)
	if err != nil {
		c.WithField("err", err).Error("httpClient.Do failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		c.WithField("errorBody", string(errorBody)).Error("Request failed")
		return "", ErrRequestFailed
	}

	type payload struct {
		IpfsHash string `json:"IpfsHash"`
	}

	p := &payload{}

	if err := json.NewDecoder(resp.Body).Decode(p); err != nil {
		c.WithField("err", err).Error("json.NewDecoder.Decode failed")
		return "", err
	}

	return p.IpfsHash, nil
}
