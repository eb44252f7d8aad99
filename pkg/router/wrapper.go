package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayloft-lab/backend/pkg/errorx"
	"github.com/stayloft-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := router.newRequestContext(ginCtx)
		defer runClosers(ctx, router.closers)

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = ginCtx.ShouldBindQuery(&req)
		case http.MethodPost:
			err = ginCtx.ShouldBindJSON(&req)
		}
		if err != nil {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			writeResponse(ctx, ginCtx)
			return
		}

		ctx, err = runMiddlewares(ctx, router.befores)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeResponse(ctx, ginCtx)
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeResponse(ctx, ginCtx)
			return
		}

		xcontext.SetResponse(ctx, resp)
		if ctx, err = runMiddlewares(ctx, router.afters); err != nil {
			xcontext.SetError(ctx, err)
		}

		writeResponse(ctx, ginCtx)
	}
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, middleware := range middlewares {
		newCtx, err := middleware(ctx)
		if err != nil {
			return ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}

func runClosers(ctx context.Context, closers []CloserFunc) {
	for _, closer := range closers {
		closer(ctx)
	}
}
