// Package nav holds the navigation state that drives re-renders: the
// viewport, the magnification factor shown in the title and a bounded undo
// history of navigation commands.
//
// A State is owned by one host event loop and is not safe for concurrent
// use. Hosts apply commands, check Stale, render, then call MarkRendered.
//
//	st := nav.New()
//	st.Apply(nav.ZoomIn)
//	if st.Stale() {
//	    err := renderer.Render(ctx, st.Viewport(), raster)
//	    ...
//	    st.MarkRendered()
//	}
package nav
