package fetcher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pagevet/pagevet/internal/browser"
	"github.com/pagevet/pagevet/internal/models"
)

// fontSampleJS computes the font size of up to 200 leaf text elements.
// %f is replaced with the too-small threshold in CSS pixels.
const fontSampleJS = `() => {
	const threshold = %f;
	const els = document.querySelectorAll('p,span,a,li,td,th,label,button,dd,dt,figcaption,small');
	let sampled = 0, tooSmall = 0, minPx = 0;
	for (const el of els) {
		if (sampled >= 200) break;
		if (!el.textContent || !el.textContent.trim()) continue;
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') continue;
		const size = parseFloat(style.fontSize);
		if (!size || isNaN(size)) continue;
		sampled++;
		if (minPx === 0 || size < minPx) minPx = size;
		if (size < threshold) tooSmall++;
	}
	return { sampled: sampled, too_small: tooSmall, min_px: minPx };
}`

// tapTargetJS measures the hit area of up to 100 visible clickable elements.
// %f is replaced with the minimum acceptable dimension in CSS pixels.
const tapTargetJS = `() => {
	const minPx = %f;
	const els = document.querySelectorAll('a,button,input[type="button"],input[type="submit"],[role="button"]');
	let sampled = 0, tooSmall = 0;
	for (const el of els) {
		if (sampled >= 100) break;
		const r = el.getBoundingClientRect();
		if (r.width === 0 || r.height === 0) continue;
		sampled++;
		if (r.width < minPx || r.height < minPx) tooSmall++;
	}
	return { sampled: sampled, too_small: tooSmall };
}`

// collectRenderMetrics samples the rendered page for font sizes and tap
// target dimensions. Failures are logged and leave the snapshot samples nil;
// the fetch itself is not affected.
func (pf *PageFetcher) collectRenderMetrics(ctx context.Context, session browser.Session, snapshot *models.PageSnapshot) {
	if raw, err := session.Evaluate(ctx, fmt.Sprintf(fontSampleJS, pf.config.FontSizeThresholdPx)); err != nil {
		pf.logger.Warn().Err(err).Msg("Font size sampling failed")
	} else {
		var sample models.FontSample
		if err := json.Unmarshal([]byte(raw), &sample); err != nil {
			pf.logger.Warn().Err(err).Str("raw", raw).Msg("Failed to decode font sample")
		} else if sample.Sampled > 0 {
			snapshot.FontSample = &sample
		}
	}

	if raw, err := session.Evaluate(ctx, fmt.Sprintf(tapTargetJS, pf.config.TapTargetMinPx)); err != nil {
		pf.logger.Warn().Err(err).Msg("Tap target sampling failed")
	} else {
		var sample models.TapTargetSample
		if err := json.Unmarshal([]byte(raw), &sample); err != nil {
			pf.logger.Warn().Err(err).Str("raw", raw).Msg("Failed to decode tap target sample")
		} else if sample.Sampled > 0 {
			snapshot.TapTargetSample = &sample
		}
	}
}
