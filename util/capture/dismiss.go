package capture

import (
	"context"

	"github.com/tranvictor/tokenlens/util/browser"
)

// Dismisser is one overlay dismissal strategy. Run reports whether it
// believes it removed or closed something.
type Dismisser struct {
	Name string
	Run  func(ctx context.Context, s browser.Session) (acted bool, err error)
}

// DefaultDismissers are run in this order before every screenshot.
func DefaultDismissers() []Dismisser {
	return []Dismisser{
		RemoveDialogs,
		PressEscape,
		CleanupOverlays,
	}
}

const removeDialogsJS = `() => {
	const selectors = [
		'[role="dialog"]',
		'[role="alertdialog"]',
		'[aria-modal="true"]',
		'.modal',
		'.MuiDialog-root',
		'.MuiModal-root',
		'[class*="modal"]',
		'[class*="popup"]',
		'[class*="cookie"]',
	];
	let removed = 0;
	for (const sel of selectors) {
		document.querySelectorAll(sel).forEach((el) => {
			el.remove();
			removed++;
		});
	}
	return removed > 0;
}`

const cleanupOverlaysJS = `() => {
	let changed = false;
	const vw = window.innerWidth, vh = window.innerHeight;
	document.querySelectorAll('body *').forEach((el) => {
		const style = window.getComputedStyle(el);
		if (style.position !== 'fixed' && style.position !== 'sticky') return;
		const z = parseInt(style.zIndex, 10);
		const rect = el.getBoundingClientRect();
		const covers = rect.width >= vw * 0.5 && rect.height >= vh * 0.5;
		const backdrop = /backdrop|overlay|mask/i.test(el.className || '');
		if ((covers && z >= 100) || backdrop) {
			el.remove();
			changed = true;
		}
	});
	for (const el of [document.documentElement, document.body]) {
		if (el && (el.style.overflow === 'hidden' || el.style.pointerEvents === 'none')) {
			el.style.overflow = '';
			el.style.pointerEvents = '';
			changed = true;
		}
	}
	return changed;
}`

// RemoveDialogs deletes dialog and modal elements from the DOM.
var RemoveDialogs = Dismisser{
	Name: "remove-dialogs",
	Run: func(ctx context.Context, s browser.Session) (bool, error) {
		return s.Eval(ctx, removeDialogsJS)
	},
}

// PressEscape closes whatever listens to the Escape key.
var PressEscape = Dismisser{
	Name: "press-escape",
	Run: func(ctx context.Context, s browser.Session) (bool, error) {
		if err := s.PressEscape(ctx); err != nil {
			return false, err
		}
		return true, nil
	},
}

// CleanupOverlays removes full screen fixed layers and backdrops left behind
// by the previous strategies and unlocks page scrolling.
var CleanupOverlays = Dismisser{
	Name: "cleanup-overlays",
	Run: func(ctx context.Context, s browser.Session) (bool, error) {
		return s.Eval(ctx, cleanupOverlaysJS)
	},
}
