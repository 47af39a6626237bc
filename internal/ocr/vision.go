package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultVisionURL = "https://vision.googleapis.com/v1/images:annotate"

// VisionExtractor calls the Google Cloud Vision images:annotate REST endpoint.
type VisionExtractor struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewVisionExtractor(endpoint, apiKey string) (*VisionExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("missing VISION_API_KEY")
	}
	if endpoint == "" {
		endpoint = defaultVisionURL
	}
	return &VisionExtractor{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type visionRequest struct {
	Requests []visionImageRequest `json:"requests"`
}

type visionImageRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

func (v *VisionExtractor) ExtractLines(ctx context.Context, image []byte) ([]string, error) {
	payload, err := json.Marshal(visionRequest{
		Requests: []visionImageRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []visionFeature{{Type: "TEXT_DETECTION"}},
		}},
	})
	if err != nil {
		return nil, err
	}

	endpoint := v.endpoint + "?key=" + url.QueryEscape(v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision api error %d: %s", resp.StatusCode, string(body))
	}

	var parsed visionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode vision response: %w", err)
	}
	if len(parsed.Responses) == 0 {
		return []string{}, nil
	}

	r := parsed.Responses[0]
	if r.Error != nil {
		return nil, fmt.Errorf("vision api error %d: %s", r.Error.Code, r.Error.Message)
	}

	switch {
	case r.FullTextAnnotation != nil && r.FullTextAnnotation.Text != "":
		return SplitLines(r.FullTextAnnotation.Text), nil
	case len(r.TextAnnotations) > 0:
		return SplitLines(r.TextAnnotations[0].Description), nil
	default:
		return []string{}, nil
	}
}
